// Package adapter decodes the backend's JSON documents into domain types.
// Entries that do not carry the required fields are dropped with a warning
// instead of failing the whole document.
package adapter

import (
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

func decodeArray(r io.Reader, kind string) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, xerrors.Errorf("%s: json decode error: %w", kind, err)
	}
	return raw, nil
}

func skip(kind string, i int, err error) {
	log.Warn("Skipping malformed entry", log.String("kind", kind), log.Int("index", i), log.Err(err))
}

// InstalledVersions indexes packages by name. Packages without a version are
// left out; a later duplicate overrides an earlier one.
func InstalledVersions(pkgs []types.Package) map[string]string {
	versions := map[string]string{}
	for _, pkg := range pkgs {
		if pkg.Version == "" {
			continue
		}
		if prev, ok := versions[pkg.Name]; ok && prev != pkg.Version {
			log.Warn("Package listed with several versions", log.String("package", pkg.Name),
				log.String("previous", prev), log.String("version", pkg.Version))
		}
		versions[pkg.Name] = pkg.Version
	}
	return versions
}

func trim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
