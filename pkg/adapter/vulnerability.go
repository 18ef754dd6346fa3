package adapter

import (
	"encoding/json"
	"io"
	"strings"

	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

type rawVulnerability struct {
	ID          *string  `json:"id"`
	Severity    *string  `json:"severity"`
	CVSSVector  *string  `json:"cvss_vector"`
	Description *string  `json:"description"`
	Packages    []string `json:"packages"`
}

// DecodeVulnerabilities reads a JSON array of vulnerabilities. The severity
// falls back to the rating of the CVSS base score when it is missing or not
// recognised.
func DecodeVulnerabilities(r io.Reader) ([]types.Vulnerability, error) {
	raw, err := decodeArray(r, "vulnerabilities")
	if err != nil {
		return nil, err
	}

	vulns := make([]types.Vulnerability, 0, len(raw))
	for i, msg := range raw {
		var rv rawVulnerability
		if err = json.Unmarshal(msg, &rv); err != nil {
			skip("vulnerability", i, err)
			continue
		}
		id := trim(rv.ID)
		if id == "" {
			skip("vulnerability", i, xerrors.New("vulnerability without id"))
			continue
		}

		vuln := types.Vulnerability{
			ID:          id,
			CVSSVector:  trim(rv.CVSSVector),
			Description: trim(rv.Description),
			Packages:    rv.Packages,
		}
		if vuln.CVSSVector != "" {
			score, err := CVSSScore(vuln.CVSSVector)
			if err != nil {
				log.Debug("Ignoring CVSS vector", log.String("id", id), log.Err(err))
			}
			vuln.CVSSScore = score
		}

		severity, err := types.NewSeverity(trim(rv.Severity))
		if err != nil {
			severity = types.SeverityFromScore(vuln.CVSSScore)
		}
		vuln.Severity = severity
		vulns = append(vulns, vuln)
	}
	return vulns, nil
}

// CVSSScore computes the base score of a CVSS v3.0, v3.1 or v4.0 vector.
func CVSSScore(vector string) (float64, error) {
	switch {
	case strings.HasPrefix(vector, "CVSS:3.0/"):
		cvss, err := gocvss30.ParseVector(vector)
		if err != nil {
			return 0, xerrors.Errorf("cvss 3.0 parse error: %w", err)
		}
		return cvss.BaseScore(), nil
	case strings.HasPrefix(vector, "CVSS:3.1/"):
		cvss, err := gocvss31.ParseVector(vector)
		if err != nil {
			return 0, xerrors.Errorf("cvss 3.1 parse error: %w", err)
		}
		return cvss.BaseScore(), nil
	case strings.HasPrefix(vector, "CVSS:4.0/"):
		cvss, err := gocvss40.ParseVector(vector)
		if err != nil {
			return 0, xerrors.Errorf("cvss 4.0 parse error: %w", err)
		}
		return cvss.Score(), nil
	}
	return 0, xerrors.Errorf("unsupported cvss vector: %s", vector)
}
