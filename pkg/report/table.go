package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/vulnboard/vulnboard/pkg/patchfinder"
	"github.com/vulnboard/vulnboard/pkg/types"
)

var (
	solvesAll  = color.New(color.FgGreen).SprintFunc()
	solvesSome = color.New(color.FgYellow).SprintFunc()
	solvesNone = color.New(color.Faint).SprintFunc()
)

type TableWriter struct{}

func (TableWriter) Patches(w io.Writer, results map[string]types.PackageVersions) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tVULNS\tSAME MINOR\tSAME MAJOR\tLATEST")
	for _, name := range packageNames(results) {
		pv := results[name]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", name, pv.NbVulns,
			cell(pv.SameMinor, pv.NbVulns), cell(pv.SameMajor, pv.NbVulns), cell(pv.Latest, pv.NbVulns))
	}
	return tw.Flush()
}

func (TableWriter) Versions(w io.Writer, pkgName string, vv types.VersionVulns) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", pkgName)
	fmt.Fprintln(tw, "VERSION\tSOLVES\tVULNERABILITIES")
	for _, v := range patchfinder.SortedVersions(vv) {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", v, len(vv[v]), strings.Join(vv[v], ", "))
	}
	return tw.Flush()
}

func cell(p types.VersionPatchs, total int) string {
	if p.Version == "" {
		return solvesNone("-")
	}
	s := fmt.Sprintf("%s (%d/%d)", p.Version, p.Solve, total)
	if p.Solve == total {
		return solvesAll(s)
	}
	return solvesSome(s)
}
