package duration

import (
	"regexp"
	"strconv"

	"golang.org/x/xerrors"
)

const number = `(\d+(?:\.\d+)?)`

var iso8601Pattern = regexp.MustCompile(`^P` +
	`(?:` + number + `Y)?` +
	`(?:` + number + `M)?` +
	`(?:` + number + `W)?` +
	`(?:` + number + `D)?` +
	`(T` +
	`(?:` + number + `H)?` +
	`(?:` + number + `M)?` +
	`(?:` + number + `S)?` +
	`)?$`)

// ParseISO8601 parses "PnYnMnWnDTnHnMnS". Every unit is optional, but at
// least one must be present, and a "T" must be followed by a time unit.
func ParseISO8601(s string) (Duration, error) {
	m := iso8601Pattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, xerrors.Errorf("%q is not an ISO-8601 duration: %w", s, ErrParse)
	}

	// m[5] is the whole time part including the "T"
	hasDate := m[1] != "" || m[2] != "" || m[3] != "" || m[4] != ""
	hasTime := m[6] != "" || m[7] != "" || m[8] != ""
	switch {
	case m[5] != "" && !hasTime:
		return Duration{}, xerrors.Errorf("%q has a time designator without time units: %w", s, ErrParse)
	case !hasDate && !hasTime:
		return Duration{}, xerrors.Errorf("%q has no duration units: %w", s, ErrParse)
	}

	values := make([]float64, 0, 7)
	for _, g := range []string{m[1], m[2], m[3], m[4], m[6], m[7], m[8]} {
		v, err := parseNumber(g)
		if err != nil {
			return Duration{}, xerrors.Errorf("%q: %v: %w", s, err, ErrParse)
		}
		values = append(values, v)
	}

	return newDuration(components{
		years:   values[0],
		months:  values[1],
		weeks:   values[2],
		days:    values[3],
		hours:   values[4],
		minutes: values[5],
		seconds: values[6],
	}), nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
