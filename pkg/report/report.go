// Package report renders patch finder results.
package report

import (
	"io"
	"sort"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/types"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var Formats = []string{FormatTable, FormatJSON, FormatYAML}

type Writer interface {
	// Patches writes the upgrade targets of every package.
	Patches(w io.Writer, results map[string]types.PackageVersions) error
	// Versions writes which vulnerabilities each target version of pkgName solves.
	Versions(w io.Writer, pkgName string, vv types.VersionVulns) error
}

func Get(format string) (Writer, error) {
	switch format {
	case FormatTable, "":
		return TableWriter{}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatYAML:
		return YAMLWriter{}, nil
	}
	return nil, xerrors.Errorf("unknown format %q, expected one of %v", format, Formats)
}

func packageNames(results map[string]types.PackageVersions) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
