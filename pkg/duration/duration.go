// Package duration parses and formats effort estimates written either as
// ISO-8601 durations ("P1W2DT4H") or in the Gitlab time-tracking shorthand
// ("1w 2d 4h").
//
// All conversions to seconds use the work calendar below, not the wall clock:
//
//	1 day   = 8 hours
//	1 week  = 5 days
//	1 month = 4 weeks
//	1 year  = 48 weeks
package duration

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 8 * secondsPerHour
	secondsPerWeek   = 5 * secondsPerDay
	secondsPerMonth  = 4 * secondsPerWeek
	secondsPerYear   = 48 * secondsPerWeek
)

var ErrParse = xerrors.New("duration parse error")

// Duration is an immutable set of calendar components. The total in seconds
// is fixed when the value is built.
type Duration struct {
	years   float64
	months  float64
	weeks   float64
	days    float64
	hours   float64
	minutes float64
	seconds float64

	total float64
}

type components struct {
	years, months, weeks, days, hours, minutes, seconds float64
}

func newDuration(c components) Duration {
	return Duration{
		years:   c.years,
		months:  c.months,
		weeks:   c.weeks,
		days:    c.days,
		hours:   c.hours,
		minutes: c.minutes,
		seconds: c.seconds,
		total: c.seconds +
			c.minutes*secondsPerMinute +
			c.hours*secondsPerHour +
			c.days*secondsPerDay +
			c.weeks*secondsPerWeek +
			c.months*secondsPerMonth +
			c.years*secondsPerYear,
	}
}

// Parse builds a Duration from an optional string. A nil input yields the
// zero duration.
func Parse(input *string) (Duration, error) {
	if input == nil {
		return Duration{}, nil
	}
	return New(*input)
}

// New parses s as ISO-8601 when it starts with "P", and as the Gitlab
// shorthand otherwise.
func New(s string) (Duration, error) {
	if strings.HasPrefix(s, "P") {
		return ParseISO8601(s)
	}
	return ParseGitlab(s)
}

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(s string) Duration {
	d, err := New(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSeconds splits a number of seconds into calendar components, largest
// unit first. Fractions that do not fill a whole second stay in Seconds.
func FromSeconds(total float64) Duration {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return Duration{}
	}

	var c components
	rest := total
	take := func(unit float64) float64 {
		n := math.Floor(rest / unit)
		rest -= n * unit
		return n
	}
	c.years = take(secondsPerYear)
	c.months = take(secondsPerMonth)
	c.weeks = take(secondsPerWeek)
	c.days = take(secondsPerDay)
	c.hours = take(secondsPerHour)
	c.minutes = take(secondsPerMinute)
	c.seconds = rest
	return newDuration(c)
}

func (d Duration) Years() float64   { return d.years }
func (d Duration) Months() float64  { return d.months }
func (d Duration) Weeks() float64   { return d.weeks }
func (d Duration) Days() float64    { return d.days }
func (d Duration) Hours() float64   { return d.hours }
func (d Duration) Minutes() float64 { return d.minutes }
func (d Duration) Seconds() float64 { return d.seconds }

// TotalSeconds returns the work-calendar length of the duration.
func (d Duration) TotalSeconds() float64 {
	return d.total
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.years == 0 && d.months == 0 && d.weeks == 0 && d.days == 0 &&
		d.hours == 0 && d.minutes == 0 && d.seconds == 0
}

// FormatISO8601 renders the duration as an ISO-8601 string. The zero
// duration is "P0D".
func (d Duration) FormatISO8601() string {
	var sb strings.Builder
	sb.WriteString("P")
	writeUnit(&sb, d.years, "Y")
	writeUnit(&sb, d.months, "M")
	writeUnit(&sb, d.weeks, "W")
	writeUnit(&sb, d.days, "D")

	if d.hours != 0 || d.minutes != 0 || d.seconds != 0 {
		sb.WriteString("T")
		writeUnit(&sb, d.hours, "H")
		writeUnit(&sb, d.minutes, "M")
		writeUnit(&sb, d.seconds, "S")
	}

	if sb.Len() == 1 {
		return "P0D"
	}
	return sb.String()
}

// FormatHumanShort renders the duration in the Gitlab shorthand, e.g.
// "1w 2d 4h". Seconds are dropped. The zero duration is "N/A".
func (d Duration) FormatHumanShort() string {
	var parts []string
	for _, u := range []struct {
		value float64
		unit  string
	}{
		{d.years, "y"},
		{d.months, "mo"},
		{d.weeks, "w"},
		{d.days, "d"},
		{d.hours, "h"},
		{d.minutes, "m"},
	} {
		if u.value != 0 {
			parts = append(parts, formatNumber(u.value)+u.unit)
		}
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " ")
}

func (d Duration) String() string {
	return d.FormatISO8601()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.FormatISO8601()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := New(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func writeUnit(sb *strings.Builder, value float64, unit string) {
	if value == 0 {
		return
	}
	sb.WriteString(formatNumber(value))
	sb.WriteString(unit)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
