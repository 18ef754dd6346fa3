package report

import (
	"encoding/json"
	"io"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/types"
)

type JSONWriter struct{}

func (JSONWriter) Patches(w io.Writer, results map[string]types.PackageVersions) error {
	return writeJSON(w, results)
}

func (JSONWriter) Versions(w io.Writer, pkgName string, vv types.VersionVulns) error {
	return writeJSON(w, map[string]types.VersionVulns{pkgName: vv})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return xerrors.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
