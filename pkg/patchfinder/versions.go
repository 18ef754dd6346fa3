// Package patchfinder finds the upgrade targets that clear the most
// vulnerabilities of a package with the least disruption.
//
// Targets are bucketed by compatibility with the installed version:
// same minor (tilde range), same major (caret range) and latest (any).
package patchfinder

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/set"
	"github.com/vulnboard/vulnboard/pkg/types"
)

// ComputeVersionsAndPatch returns the upgrade targets of every package found
// in both data and current. Packages whose installed version is not a
// semantic version are left out of the result.
func ComputeVersionsAndPatch(data types.PackageVulnerabilities, current map[string]string,
	filter types.Filter) map[string]types.PackageVersions {
	m := newMatcher(filter)

	result := map[string]types.PackageVersions{}
	for pkgName, vulns := range data {
		installed, ok := current[pkgName]
		if !ok {
			continue
		}
		r, err := newRanges(installed)
		if err != nil {
			log.Debug("Skipping package with invalid installed version",
				log.String("package", pkgName), log.Err(err))
			continue
		}

		var pv types.PackageVersions
		var sameMinor, sameMajor, latest bucket
		for vulnID, bySource := range vulns {
			pv.NbVulns++

			// every surviving source entry counts on its own
			for source, info := range bySource {
				if !m.accept(vulnID, source, info.SolveAll) {
					continue
				}
				v, err := semver.NewVersion(info.SolveAll)
				if err != nil {
					continue
				}
				latest.add(v)
				if r.sameMajor.Check(v) {
					sameMajor.add(v)
					if r.sameMinor.Check(v) {
						sameMinor.add(v)
					}
				}
			}
		}

		pv.SameMinor = sameMinor.patchs()
		pv.SameMajor = sameMajor.patchs()
		pv.Latest = latest.patchs()
		result[pkgName] = pv
	}
	return result
}

// ComputeVersionVulns groups, per package, the vulnerability IDs by the exact
// version that solves them. It applies the same filters as
// ComputeVersionsAndPatch but does not bucket by compatibility.
func ComputeVersionVulns(data types.PackageVulnerabilities, current map[string]string,
	filter types.Filter) map[string]types.VersionVulns {
	m := newMatcher(filter)

	result := map[string]types.VersionVulns{}
	for pkgName, vulns := range data {
		installed, ok := current[pkgName]
		if !ok {
			continue
		}
		if _, err := newRanges(installed); err != nil {
			log.Debug("Skipping package with invalid installed version",
				log.String("package", pkgName), log.Err(err))
			continue
		}

		byVersion := map[string]set.Set[string]{}
		for vulnID, bySource := range vulns {
			for source, info := range bySource {
				if !m.accept(vulnID, source, info.SolveAll) {
					continue
				}
				ids, ok := byVersion[info.SolveAll]
				if !ok {
					ids = set.Of[string]()
					byVersion[info.SolveAll] = ids
				}
				ids.Add(vulnID)
			}
		}

		vv := types.VersionVulns{}
		for v, ids := range byVersion {
			vv[v] = set.Sorted(ids)
		}
		result[pkgName] = vv
	}
	return result
}

// SortedVersions returns the versions of vv in ascending semantic version
// order.
func SortedVersions(vv types.VersionVulns) []string {
	versions := make([]string, 0, len(vv))
	for v := range vv {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		vi, erri := semver.NewVersion(versions[i])
		vj, errj := semver.NewVersion(versions[j])
		switch {
		case erri != nil && errj != nil:
			return versions[i] < versions[j]
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return vi.LessThan(vj)
	})
	return versions
}

type ranges struct {
	sameMinor *semver.Constraints
	sameMajor *semver.Constraints
}

func newRanges(installed string) (ranges, error) {
	v, err := semver.NewVersion(installed)
	if err != nil {
		return ranges{}, xerrors.Errorf("invalid version %q: %w", installed, err)
	}
	tilde, err := semver.NewConstraint("~" + v.String())
	if err != nil {
		return ranges{}, xerrors.Errorf("same minor range of %q: %w", installed, err)
	}
	caret, err := semver.NewConstraint("^" + v.String())
	if err != nil {
		return ranges{}, xerrors.Errorf("same major range of %q: %w", installed, err)
	}
	return ranges{sameMinor: tilde, sameMajor: caret}, nil
}

type matcher struct {
	sources set.Set[string]
	filter  bool
	search  string
}

func newMatcher(filter types.Filter) matcher {
	return matcher{
		sources: set.Of(filter.Sources...),
		filter:  len(filter.Sources) > 0,
		search:  filter.Search,
	}
}

func (m matcher) accept(vulnID, source, target string) bool {
	if target == "" {
		return false
	}
	if m.filter && !m.sources.Contains(source) {
		return false
	}
	if m.search != "" && !strings.Contains(target, m.search) && !strings.Contains(vulnID, m.search) {
		return false
	}
	return true
}

// bucket keeps the greatest target seen and how many entries were counted
// into it.
type bucket struct {
	version *semver.Version
	solve   int
}

func (b *bucket) add(v *semver.Version) {
	b.solve++
	if b.version == nil || v.GreaterThan(b.version) {
		b.version = v
	}
}

func (b bucket) patchs() types.VersionPatchs {
	p := types.VersionPatchs{Solve: b.solve}
	if b.version != nil {
		p.Version = b.version.String()
	}
	return p
}
