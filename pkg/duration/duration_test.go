package duration_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulnboard/vulnboard/pkg/duration"
)

func strPtr(s string) *string {
	return &s
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       *string
		wantSeconds float64
		wantISO     string
		wantHuman   string
		wantErr     bool
	}{
		{
			name:        "nil input",
			input:       nil,
			wantSeconds: 0,
			wantISO:     "P0D",
			wantHuman:   "N/A",
		},
		{
			name:        "empty string",
			input:       strPtr(""),
			wantSeconds: 0,
			wantISO:     "P0D",
			wantHuman:   "N/A",
		},
		{
			name:        "one day",
			input:       strPtr("P1D"),
			wantSeconds: 8 * 3600,
			wantISO:     "P1D",
			wantHuman:   "1d",
		},
		{
			name:        "every unit",
			input:       strPtr("P1Y2M3W4DT5H6M7S"),
			wantSeconds: 6912000 + 2*576000 + 3*144000 + 4*28800 + 5*3600 + 6*60 + 7,
			wantISO:     "P1Y2M3W4DT5H6M7S",
			wantHuman:   "1y 2mo 3w 4d 5h 6m",
		},
		{
			name:        "fractional hours",
			input:       strPtr("PT1.5H"),
			wantSeconds: 5400,
			wantISO:     "PT1.5H",
			wantHuman:   "1.5h",
		},
		{
			name:        "seconds only",
			input:       strPtr("PT30S"),
			wantSeconds: 30,
			wantISO:     "PT30S",
			wantHuman:   "N/A",
		},
		{
			name:        "gitlab shorthand",
			input:       strPtr("1y 2mo 1w 3d 5h 30m"),
			wantSeconds: 6912000 + 2*576000 + 144000 + 3*28800 + 5*3600 + 30*60,
			wantISO:     "P1Y2M1W3DT5H30M",
			wantHuman:   "1y 2mo 1w 3d 5h 30m",
		},
		{
			name:        "bare number is days",
			input:       strPtr("3"),
			wantSeconds: 3 * 28800,
			wantISO:     "P3D",
			wantHuman:   "3d",
		},
		{
			name:    "bare P",
			input:   strPtr("P"),
			wantErr: true,
		},
		{
			name:    "time designator without units",
			input:   strPtr("PT"),
			wantErr: true,
		},
		{
			name:    "trailing time designator",
			input:   strPtr("P1DT"),
			wantErr: true,
		},
		{
			name:    "unknown unit",
			input:   strPtr("P1X"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := duration.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, duration.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeconds, got.TotalSeconds())
			assert.Equal(t, tt.wantISO, got.FormatISO8601())
			assert.Equal(t, tt.wantHuman, got.FormatHumanShort())
		})
	}
}

func TestParseISO8601(t *testing.T) {
	_, err := duration.ParseISO8601("hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, duration.ErrParse)
	assert.Contains(t, err.Error(), "hello")

	_, err = duration.ParseISO8601("")
	assert.ErrorIs(t, err, duration.ErrParse)
}

func TestCalendar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "week is five days", a: "P1W", b: "P5D"},
		{name: "month is four weeks", a: "P1M", b: "P4W"},
		{name: "year is 48 weeks", a: "P1Y", b: "P48W"},
		{name: "day is eight hours", a: "P1D", b: "PT8H"},
		{name: "hours and minutes", a: "PT2H", b: "PT120M"},
		{name: "minutes and seconds", a: "PT1M", b: "PT60S"},
		{name: "gitlab and iso", a: "2d 4h", b: "P2DT4H"},
		{name: "long unit names", a: "1year 2months 3weeks 4days 5hours 6minutes", b: "P1Y2M3W4DT5H6M"},
		{name: "plural unit names", a: "2years 2weeks 2days", b: "P2Y2W2D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, duration.MustNew(tt.a).TotalSeconds(), duration.MustNew(tt.b).TotalSeconds())
		})
	}
}

func TestParseGitlab(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantHuman string
	}{
		{
			name:      "four minutes read as months",
			input:     "4m",
			want:      "4mo",
			wantHuman: "4mo",
		},
		{
			name:      "one minute read as months",
			input:     "1m",
			want:      "P1M",
			wantHuman: "1mo",
		},
		{
			name:      "spelled out minutes read as months",
			input:     "3minutes",
			want:      "P3M",
			wantHuman: "3mo",
		},
		{
			name:      "min is not a unit",
			input:     "2h 3min",
			want:      "PT2H",
			wantHuman: "2h",
		},
		{
			name:      "five minutes stay minutes",
			input:     "5m",
			want:      "PT5M",
			wantHuman: "5m",
		},
		{
			name:      "repeated units accumulate",
			input:     "1h 2h 30m 15m",
			want:      "PT3H45M",
			wantHuman: "3h 45m",
		},
		{
			name:      "unknown tokens are skipped",
			input:     "2d soon 3h",
			want:      "P2DT3H",
			wantHuman: "2d 3h",
		},
		{
			name:      "only unknown tokens",
			input:     "whenever",
			want:      "P0D",
			wantHuman: "N/A",
		},
		{
			name:      "extra whitespace",
			input:     "  1w\t\t2d \n",
			want:      "P1W2D",
			wantHuman: "1w 2d",
		},
		{
			name:      "fractional days",
			input:     "1.5d",
			want:      "PT12H",
			wantHuman: "1.5d",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := duration.ParseGitlab(tt.input)
			require.NoError(t, err)
			assert.Equal(t, duration.MustNew(tt.want).TotalSeconds(), got.TotalSeconds())
			assert.Equal(t, tt.wantHuman, got.FormatHumanShort())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"P1D",
		"P1Y2M3W4DT5H6M7S",
		"PT0.5H",
		"P0D",
		"1y 2mo 1w 3d 5h 30m",
		"4m",
		"7m",
		"12",
		"2.25w",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			d := duration.MustNew(input)
			again, err := duration.New(d.FormatISO8601())
			require.NoError(t, err)
			assert.Equal(t, d.TotalSeconds(), again.TotalSeconds())
		})
	}
}

func TestFromSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "P0D"},
		{name: "negative", seconds: -10, want: "P0D"},
		{name: "one and a half days", seconds: 1.5 * 28800, want: "P1DT4H"},
		{name: "one week and one minute", seconds: 144000 + 60, want: "P1WT1M"},
		{name: "one year", seconds: 6912000, want: "P1Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := duration.FromSeconds(tt.seconds)
			assert.Equal(t, tt.want, got.FormatISO8601())
			if tt.seconds > 0 {
				assert.Equal(t, tt.seconds, got.TotalSeconds())
			}
		})
	}
}

func TestDuration_JSON(t *testing.T) {
	type record struct {
		Effort duration.Duration `json:"effort"`
	}

	var r record
	require.NoError(t, json.Unmarshal([]byte(`{"effort":"2d 4h"}`), &r))
	assert.Equal(t, float64(2*28800+4*3600), r.Effort.TotalSeconds())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"effort":"P2DT4H"}`, string(b))

	err = json.Unmarshal([]byte(`{"effort":"P"}`), &r)
	assert.ErrorIs(t, err, duration.ErrParse)
}
