package estimate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulnboard/vulnboard/pkg/duration"
	"github.com/vulnboard/vulnboard/pkg/estimate"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		optimistic  string
		likely      string
		pessimistic string
		wantErr     string
	}{
		{
			name:        "happy path",
			optimistic:  "1d",
			likely:      "P2D",
			pessimistic: "1w",
		},
		{
			name:        "broken likely",
			optimistic:  "1d",
			likely:      "P",
			pessimistic: "1w",
			wantErr:     "likely",
		},
		{
			name:        "broken pessimistic",
			optimistic:  "1d",
			likely:      "2d",
			pessimistic: "PXD",
			wantErr:     "pessimistic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := estimate.New(tt.optimistic, tt.likely, tt.pessimistic)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, duration.ErrParse)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEstimate_Validate(t *testing.T) {
	tests := []struct {
		name        string
		optimistic  string
		likely      string
		pessimistic string
		wantErr     string
	}{
		{
			name:        "ordered",
			optimistic:  "4h",
			likely:      "1d",
			pessimistic: "3d",
		},
		{
			name:        "all equal",
			optimistic:  "P1D",
			likely:      "8h",
			pessimistic: "PT480M",
		},
		{
			name:        "zero optimistic",
			optimistic:  "",
			likely:      "1d",
			pessimistic: "3d",
			wantErr:     "optimistic estimate must be positive",
		},
		{
			name:        "zero pessimistic",
			optimistic:  "1h",
			likely:      "1d",
			pessimistic: "nope",
			wantErr:     "pessimistic estimate must be positive",
		},
		{
			name:        "optimistic above likely",
			optimistic:  "2d",
			likely:      "1d",
			pessimistic: "3d",
			wantErr:     "optimistic estimate (2d) exceeds likely estimate (1d)",
		},
		{
			name:        "likely above pessimistic",
			optimistic:  "1d",
			likely:      "1w",
			pessimistic: "3d",
			wantErr:     "likely estimate (1w) exceeds pessimistic estimate (3d)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := estimate.New(tt.optimistic, tt.likely, tt.pessimistic)
			require.NoError(t, err)

			err = e.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, estimate.ErrInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEstimate_Expected(t *testing.T) {
	e, err := estimate.New("1d", "2d", "6d")
	require.NoError(t, err)

	// (1 + 4*2 + 6) / 6 = 2.5 days
	assert.Equal(t, "P2DT4H", e.Expected().FormatISO8601())
	assert.Equal(t, "2d 4h", e.Expected().FormatHumanShort())
	assert.Equal(t, float64(5*28800)/6, e.StdDev())
}

func TestEstimate_JSON(t *testing.T) {
	var e estimate.Estimate
	err := json.Unmarshal([]byte(`{"optimistic":"1d","likely":"P1W","pessimistic":"2w 3d"}`), &e)
	require.NoError(t, err)
	require.NoError(t, e.Validate())

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"optimistic":"P1D","likely":"P1W","pessimistic":"P2W3D"}`, string(b))
}
