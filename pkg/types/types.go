package types

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var (
	SeverityNames = []string{
		"UNKNOWN",
		"LOW",
		"MEDIUM",
		"HIGH",
		"CRITICAL",
	}
	SeverityColor = []func(a ...interface{}) string{
		color.New(color.FgCyan).SprintFunc(),
		color.New(color.FgBlue).SprintFunc(),
		color.New(color.FgYellow).SprintFunc(),
		color.New(color.FgHiRed).SprintFunc(),
		color.New(color.FgRed).SprintFunc(),
	}
)

// NewSeverity is case-insensitive. Scanners also say "MODERATE" and
// "IMPORTANT", which map to MEDIUM and HIGH.
func NewSeverity(severity string) (Severity, error) {
	s := strings.ToUpper(strings.TrimSpace(severity))
	switch s {
	case "MODERATE":
		return SeverityMedium, nil
	case "IMPORTANT":
		return SeverityHigh, nil
	}
	for i, name := range SeverityNames {
		if s == name {
			return Severity(i), nil
		}
	}
	return SeverityUnknown, fmt.Errorf("unknown severity: %s", severity)
}

// SeverityFromScore maps a CVSS base score to a rating.
func SeverityFromScore(score float64) Severity {
	switch {
	case score <= 0:
		return SeverityUnknown
	case score < 4.0:
		return SeverityLow
	case score < 7.0:
		return SeverityMedium
	case score < 9.0:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

func CompareSeverityString(sev1, sev2 string) int {
	s1, _ := NewSeverity(sev1)
	s2, _ := NewSeverity(sev2)
	return int(s2) - int(s1)
}

func ColorizeSeverity(severity string) string {
	for i, name := range SeverityNames {
		if severity == name {
			return SeverityColor[i](severity)
		}
	}
	return color.New(color.FgBlue).SprintFunc()(severity)
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(SeverityNames) {
		return SeverityNames[0]
	}
	return SeverityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	*s, _ = NewSeverity(string(text))
	return nil
}

// PatchInfo is what one source says about one vulnerability of one package.
type PatchInfo struct {
	Affected []string `json:"affected"`
	Fix      []string `json:"fix"`

	// SolveAll is the smallest version satisfying the fix hints. Empty when
	// no hint carries a valid semantic version.
	SolveAll string `json:"solve_all,omitempty"`
}

// PackageVulnerabilities maps package -> vulnerability ID -> source -> PatchInfo.
type PackageVulnerabilities map[string]map[string]map[string]PatchInfo

// VersionPatchs is an upgrade target and the number of vulnerabilities it solves.
type VersionPatchs struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Solve   int    `json:"solve" yaml:"solve"`
}

// PackageVersions holds the upgrade targets of a package, one per
// compatibility boundary.
type PackageVersions struct {
	NbVulns   int           `json:"nb_vulns" yaml:"nb_vulns"`
	SameMinor VersionPatchs `json:"same_minor" yaml:"same_minor"`
	SameMajor VersionPatchs `json:"same_major" yaml:"same_major"`
	Latest    VersionPatchs `json:"latest" yaml:"latest"`
}

// VersionVulns maps a target version to the vulnerability IDs it resolves.
type VersionVulns map[string][]string

// Filter restricts which patch entries are considered. An empty Sources
// accepts every source and an empty Search accepts every entry.
type Filter struct {
	Sources []string `json:"sources,omitempty" toml:"sources" yaml:"sources,omitempty"`
	Search  string   `json:"search,omitempty" toml:"search" yaml:"search,omitempty"`
}

type Package struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Ecosystem string `json:"ecosystem,omitempty"`
	PURL      string `json:"purl,omitempty"`
}

type Vulnerability struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	CVSSVector  string   `json:"cvss_vector,omitempty"`
	CVSSScore   float64  `json:"cvss_score,omitempty"`
	Description string   `json:"description,omitempty"`
	Packages    []string `json:"packages,omitempty"`
}
