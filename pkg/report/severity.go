package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/vulnboard/vulnboard/pkg/types"
)

// Severities writes how many vulnerabilities there are per severity, most
// severe first. Severities without vulnerabilities are left out.
func Severities(w io.Writer, vulns []types.Vulnerability) error {
	counts := map[string]int{}
	for _, v := range vulns {
		counts[v.Severity.String()]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return types.CompareSeverityString(names[i], names[j]) < 0
	})

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", types.ColorizeSeverity(name), counts[name])
	}
	return tw.Flush()
}
