package types

import "github.com/vulnboard/vulnboard/pkg/estimate"

// Assessment is an analyst's verdict on a vulnerability for a set of
// packages, with the effort expected to remediate it.
type Assessment struct {
	VulnerabilityID string             `json:"vuln_id"`
	Packages        []string           `json:"packages,omitempty"`
	Status          Status             `json:"status"`
	Justification   string             `json:"justification,omitempty"`
	Effort          *estimate.Estimate `json:"effort,omitempty"`
}
