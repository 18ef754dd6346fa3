package patchfinder

import (
	"sort"
	"strings"

	version "github.com/hashicorp/go-version"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

// IsAffected reports whether installed falls in any of the affected ranges.
// A range is a comma separated list of comparisons (">= 1.0, < 1.4"), and
// alternatives may be joined with "||". Ranges that cannot be parsed are
// skipped.
func IsAffected(installed string, info types.PatchInfo) (bool, error) {
	v, err := version.NewVersion(installed)
	if err != nil {
		return false, xerrors.Errorf("invalid installed version %q: %w", installed, err)
	}

	for _, expr := range info.Affected {
		for _, alt := range strings.Split(expr, "||") {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				continue
			}
			c, err := version.NewConstraint(alt)
			if err != nil {
				log.Debug("Skipping unparsable affected range", log.String("range", alt), log.Err(err))
				continue
			}
			if c.Check(v) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Affecting returns, sorted, the IDs of the vulnerabilities that at least one
// source reports as affecting the installed version.
func Affecting(installed string, vulns map[string]map[string]types.PatchInfo) ([]string, error) {
	ids := []string{}
	for vulnID, bySource := range vulns {
		for _, info := range bySource {
			affected, err := IsAffected(installed, info)
			if err != nil {
				return nil, err
			}
			if affected {
				ids = append(ids, vulnID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}
