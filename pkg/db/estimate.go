package db

import (
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/estimate"
)

const (
	estimateBucket = "estimates"
	effortKey      = "effort"
)

func (dbc Config) PutEstimate(tx *bolt.Tx, vulnID string, e estimate.Estimate) error {
	if err := putJSON(tx, []string{estimateBucket, vulnID}, effortKey, e); err != nil {
		return xerrors.Errorf("failed to put estimate of %s: %w", vulnID, err)
	}
	return nil
}

// GetEstimate returns ErrNotFound when no estimate was stored for vulnID.
func (dbc Config) GetEstimate(vulnID string) (estimate.Estimate, error) {
	var e estimate.Estimate
	ok, err := getJSON([]string{estimateBucket, vulnID}, effortKey, &e)
	if err != nil {
		return estimate.Estimate{}, xerrors.Errorf("estimate of %s: %w", vulnID, err)
	} else if !ok {
		return estimate.Estimate{}, xerrors.Errorf("estimate of %s: %w", vulnID, ErrNotFound)
	}
	return e, nil
}
