// Package estimate holds three-point (optimistic, likely, pessimistic)
// remediation effort estimates.
package estimate

import (
	"math"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/duration"
)

var ErrInvalid = xerrors.New("invalid estimate")

type Estimate struct {
	Optimistic  duration.Duration `json:"optimistic" yaml:"optimistic" toml:"optimistic"`
	Likely      duration.Duration `json:"likely" yaml:"likely" toml:"likely"`
	Pessimistic duration.Duration `json:"pessimistic" yaml:"pessimistic" toml:"pessimistic"`
}

// New parses the three points. It does not validate them; see Validate.
func New(optimistic, likely, pessimistic string) (Estimate, error) {
	o, err := duration.New(optimistic)
	if err != nil {
		return Estimate{}, xerrors.Errorf("optimistic: %w", err)
	}
	l, err := duration.New(likely)
	if err != nil {
		return Estimate{}, xerrors.Errorf("likely: %w", err)
	}
	p, err := duration.New(pessimistic)
	if err != nil {
		return Estimate{}, xerrors.Errorf("pessimistic: %w", err)
	}
	return Estimate{Optimistic: o, Likely: l, Pessimistic: p}, nil
}

// Validate checks that every point is strictly positive and that
// optimistic <= likely <= pessimistic.
func (e Estimate) Validate() error {
	o, l, p := e.Optimistic.TotalSeconds(), e.Likely.TotalSeconds(), e.Pessimistic.TotalSeconds()
	switch {
	case o <= 0:
		return xerrors.Errorf("optimistic estimate must be positive: %w", ErrInvalid)
	case l <= 0:
		return xerrors.Errorf("likely estimate must be positive: %w", ErrInvalid)
	case p <= 0:
		return xerrors.Errorf("pessimistic estimate must be positive: %w", ErrInvalid)
	case o > l:
		return xerrors.Errorf("optimistic estimate (%s) exceeds likely estimate (%s): %w",
			e.Optimistic.FormatHumanShort(), e.Likely.FormatHumanShort(), ErrInvalid)
	case l > p:
		return xerrors.Errorf("likely estimate (%s) exceeds pessimistic estimate (%s): %w",
			e.Likely.FormatHumanShort(), e.Pessimistic.FormatHumanShort(), ErrInvalid)
	}
	return nil
}

// Expected is the PERT mean (o + 4l + p) / 6.
func (e Estimate) Expected() duration.Duration {
	total := (e.Optimistic.TotalSeconds() + 4*e.Likely.TotalSeconds() + e.Pessimistic.TotalSeconds()) / 6
	return duration.FromSeconds(math.Round(total))
}

// StdDev is the PERT standard deviation (p - o) / 6, in seconds.
func (e Estimate) StdDev() float64 {
	return (e.Pessimistic.TotalSeconds() - e.Optimistic.TotalSeconds()) / 6
}
