package adapter

import (
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/estimate"
	"github.com/vulnboard/vulnboard/pkg/types"
)

type rawEffort struct {
	Optimistic  string `json:"optimistic"`
	Likely      string `json:"likely"`
	Pessimistic string `json:"pessimistic"`
}

type rawAssessment struct {
	VulnerabilityID *string    `json:"vuln_id"`
	Packages        []string   `json:"packages"`
	Status          *string    `json:"status"`
	Justification   *string    `json:"justification"`
	Effort          *rawEffort `json:"effort"`
}

var statusReplacer = strings.NewReplacer("-", "_", " ", "_")

// DecodeAssessments reads a JSON array of assessments. Entries with a broken
// effort estimate are rejected and reported in the returned slice of errors;
// the error result is only set when the document is not a JSON array.
func DecodeAssessments(r io.Reader) ([]types.Assessment, []error, error) {
	raw, err := decodeArray(r, "assessments")
	if err != nil {
		return nil, nil, err
	}

	var errs []error
	assessments := make([]types.Assessment, 0, len(raw))
	for i, msg := range raw {
		var ra rawAssessment
		if err = json.Unmarshal(msg, &ra); err != nil {
			skip("assessment", i, err)
			continue
		}
		id := trim(ra.VulnerabilityID)
		if id == "" {
			skip("assessment", i, xerrors.New("assessment without vuln_id"))
			continue
		}

		a := types.Assessment{
			VulnerabilityID: id,
			Packages:        ra.Packages,
			Status:          types.NewStatus(statusReplacer.Replace(strings.ToLower(trim(ra.Status)))),
			Justification:   trim(ra.Justification),
		}
		if ra.Effort != nil {
			e, err := ra.Effort.toEstimate()
			if err != nil {
				errs = append(errs, xerrors.Errorf("assessment %s: %w", id, err))
				continue
			}
			a.Effort = &e
		}
		assessments = append(assessments, a)
	}
	return assessments, errs, nil
}

func (re rawEffort) toEstimate() (estimate.Estimate, error) {
	e, err := estimate.New(re.Optimistic, re.Likely, re.Pessimistic)
	if err != nil {
		return estimate.Estimate{}, xerrors.Errorf("effort: %w", err)
	}
	if err = e.Validate(); err != nil {
		return estimate.Estimate{}, xerrors.Errorf("effort: %w", err)
	}
	return e, nil
}
