package adapter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulnboard/vulnboard/pkg/adapter"
	"github.com/vulnboard/vulnboard/pkg/duration"
	"github.com/vulnboard/vulnboard/pkg/estimate"
	"github.com/vulnboard/vulnboard/pkg/types"
)

func TestDecodePackages(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []types.Package
		wantErr string
	}{
		{
			name: "happy path",
			input: `[
				{"name": "lodash", "version": "4.17.15", "ecosystem": "npm"},
				{"purl": "pkg:npm/%40babel/core@7.12.3"},
				{"purl": "pkg:pypi/Django_Rest@3.11.0"},
				{"name": "jackson-databind", "purl": "pkg:maven/com.fasterxml.jackson.core/jackson-databind@2.9.8"}
			]`,
			want: []types.Package{
				{Name: "lodash", Version: "4.17.15", Ecosystem: "npm"},
				{Name: "@babel/core", Version: "7.12.3", Ecosystem: "npm", PURL: "pkg:npm/%40babel/core@7.12.3"},
				{Name: "django-rest", Version: "3.11.0", Ecosystem: "pypi", PURL: "pkg:pypi/Django_Rest@3.11.0"},
				{
					Name:      "jackson-databind",
					Version:   "2.9.8",
					Ecosystem: "maven",
					PURL:      "pkg:maven/com.fasterxml.jackson.core/jackson-databind@2.9.8",
				},
			},
		},
		{
			name: "malformed entries are dropped",
			input: `[
				{"version": "1.0.0"},
				{"name": 42},
				"lodash",
				{"purl": "not a purl"},
				{"name": "express", "version": "4.17.1"}
			]`,
			want: []types.Package{
				{Name: "express", Version: "4.17.1"},
			},
		},
		{
			name:    "not an array",
			input:   `{"name": "lodash"}`,
			wantErr: "packages: json decode error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.DecodePackages(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeVulnerabilities(t *testing.T) {
	input := `[
		{"id": "CVE-2021-44228", "severity": "critical", "packages": ["log4j-core"]},
		{"id": "CVE-2020-8203", "cvss_vector": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"},
		{"id": "GHSA-xxxx-yyyy-zzzz", "severity": "moderate", "cvss_vector": "garbage"},
		{"id": "CVE-2024-0001", "cvss_vector": "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N"},
		{"severity": "LOW"},
		{"id": ["CVE-2021-0001"]}
	]`
	got, err := adapter.DecodeVulnerabilities(strings.NewReader(input))
	require.NoError(t, err)

	want := []types.Vulnerability{
		{ID: "CVE-2021-44228", Severity: types.SeverityCritical, Packages: []string{"log4j-core"}},
		{
			ID:         "CVE-2020-8203",
			Severity:   types.SeverityCritical,
			CVSSVector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			CVSSScore:  9.8,
		},
		{ID: "GHSA-xxxx-yyyy-zzzz", Severity: types.SeverityMedium, CVSSVector: "garbage"},
		{
			ID:         "CVE-2024-0001",
			Severity:   types.SeverityCritical,
			CVSSVector: "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N",
			CVSSScore:  9.3,
		},
	}
	assert.Equal(t, want, got)
}

func TestCVSSScore(t *testing.T) {
	tests := []struct {
		name    string
		vector  string
		want    float64
		wantErr string
	}{
		{
			name:   "v3.0",
			vector: "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			want:   9.8,
		},
		{
			name:   "v3.1 medium",
			vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:L/I:L/A:N",
			want:   5.4,
		},
		{
			name:    "v2 is not supported",
			vector:  "AV:N/AC:L/Au:N/C:P/I:P/A:P",
			wantErr: "unsupported cvss vector",
		},
		{
			name:    "broken v3.1",
			vector:  "CVSS:3.1/AV:X",
			wantErr: "cvss 3.1 parse error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.CVSSScore(tt.vector)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAssessments(t *testing.T) {
	input := `[
		{
			"vuln_id": "CVE-2021-44228",
			"packages": ["log4j-core"],
			"status": "Under-Investigation",
			"effort": {"optimistic": "4h", "likely": "P1D", "pessimistic": "1w"}
		},
		{"vuln_id": "CVE-2020-8203", "status": "not affected", "justification": "code path unused"},
		{"vuln_id": "CVE-2021-0001", "status": "affected", "effort": {"optimistic": "P", "likely": "1d", "pessimistic": "2d"}},
		{"vuln_id": "CVE-2021-0002", "status": "affected", "effort": {"optimistic": "3d", "likely": "1d", "pessimistic": "2d"}},
		{"status": "fixed"}
	]`
	got, errs, err := adapter.DecodeAssessments(strings.NewReader(input))
	require.NoError(t, err)

	want := []types.Assessment{
		{
			VulnerabilityID: "CVE-2021-44228",
			Packages:        []string{"log4j-core"},
			Status:          types.StatusUnderInvestigation,
			Effort: &estimate.Estimate{
				Optimistic:  duration.MustNew("4h"),
				Likely:      duration.MustNew("P1D"),
				Pessimistic: duration.MustNew("1w"),
			},
		},
		{
			VulnerabilityID: "CVE-2020-8203",
			Status:          types.StatusNotAffected,
			Justification:   "code path unused",
		},
	}
	assert.Equal(t, want, got)

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], duration.ErrParse)
	assert.Contains(t, errs[0].Error(), "CVE-2021-0001")
	assert.ErrorIs(t, errs[1], estimate.ErrInvalid)
	assert.Contains(t, errs[1].Error(), "CVE-2021-0002")
}

func TestInstalledVersions(t *testing.T) {
	pkgs := []types.Package{
		{Name: "lodash", Version: "4.17.15"},
		{Name: "express"},
		{Name: "lodash", Version: "4.17.21"},
		{Name: "react", Version: "17.0.1"},
	}
	assert.Equal(t, map[string]string{
		"lodash": "4.17.21",
		"react":  "17.0.1",
	}, adapter.InstalledVersions(pkgs))
}
