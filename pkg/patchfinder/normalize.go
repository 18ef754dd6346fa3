package patchfinder

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/types"
)

// UnknownSource labels entries whose key carries no "(<source>)" suffix.
const UnknownSource = "unknown"

// Decode reads a patch-finder scan document:
//
//	{"<package>": {"<vuln-id> (<source>)": {"affected": [...], "fix": [...]}}}
//
// Only a document that is not JSON at all is an error; malformed entries
// inside it are dropped.
func Decode(r io.Reader) (types.PackageVulnerabilities, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, xerrors.Errorf("json decode error: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize converts an already decoded scan document into typed records.
func Normalize(raw map[string]any) types.PackageVulnerabilities {
	result := types.PackageVulnerabilities{}
	for pkgName, v := range raw {
		entries, ok := v.(map[string]any)
		if !ok {
			continue
		}

		vulns := map[string]map[string]types.PatchInfo{}
		for key, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			vulnID, source := SplitKey(key)
			if vulnID == "" {
				continue
			}

			info := types.PatchInfo{
				Affected: stringsOf(entry["affected"]),
				Fix:      stringsOf(entry["fix"]),
			}
			info.SolveAll = SolveAll(info.Fix)

			if vulns[vulnID] == nil {
				vulns[vulnID] = map[string]types.PatchInfo{}
			}
			vulns[vulnID][source] = info
		}
		result[pkgName] = vulns
	}
	return result
}

// SplitKey splits "CVE-2021-1234 (nvd)" into the vulnerability ID and the
// source label.
func SplitKey(key string) (vulnID, source string) {
	idx := strings.Index(key, " (")
	if idx < 0 {
		return strings.TrimSpace(key), UnknownSource
	}

	fields := strings.Fields(key)
	source = strings.Trim(fields[len(fields)-1], "()")
	if source == "" {
		source = UnknownSource
	}
	return strings.TrimSpace(key[:idx]), source
}

// SolveAll returns the smallest version named by the fix hints. Each hint
// is "<operator> <version>", e.g. ">=? 1.2.3"; the operator token is dropped
// and hints whose remainder is not a full semantic version ("1.2" is not) are
// ignored. A leading "v" is accepted.
func SolveAll(fix []string) string {
	var lowest *semver.Version
	for _, hint := range fix {
		fields := strings.Fields(hint)
		if len(fields) < 2 {
			continue
		}
		v, err := semver.StrictNewVersion(strings.TrimPrefix(strings.Join(fields[1:], " "), "v"))
		if err != nil {
			continue
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
		}
	}
	if lowest == nil {
		return ""
	}
	return lowest.String()
}

func stringsOf(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	ss := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ss = append(ss, s)
		}
	}
	return ss
}
