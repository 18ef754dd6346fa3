package report

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/vulnboard/vulnboard/pkg/types"
)

type YAMLWriter struct{}

func (YAMLWriter) Patches(w io.Writer, results map[string]types.PackageVersions) error {
	return writeYAML(w, results)
}

func (YAMLWriter) Versions(w io.Writer, pkgName string, vv types.VersionVulns) error {
	return writeYAML(w, map[string]types.VersionVulns{pkgName: vv})
}

func writeYAML(w io.Writer, v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return xerrors.Errorf("failed to encode YAML: %w", err)
	}
	if _, err = w.Write(b); err != nil {
		return xerrors.Errorf("failed to write YAML: %w", err)
	}
	return nil
}
