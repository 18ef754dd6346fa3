package duration

import (
	"regexp"
	"strings"

	"github.com/vulnboard/vulnboard/pkg/log"
)

// Gitlab estimates rarely use single-digit minutes, but often use a handful
// of months, so "<n>m" with n <= 4 is read as months.
const maxAmbiguousMonths = 4

type gitlabUnit int

const (
	unitYears gitlabUnit = iota
	unitMonths
	unitWeeks
	unitDays
	unitHours
	unitMinutes
)

var gitlabPatterns = []struct {
	unit    gitlabUnit
	pattern *regexp.Regexp
}{
	{unitYears, regexp.MustCompile(`^` + number + `y(?:ears?)?$`)},
	{unitMonths, regexp.MustCompile(`^` + number + `mo(?:nths?)?$`)},
	{unitWeeks, regexp.MustCompile(`^` + number + `w(?:eeks?)?$`)},
	{unitDays, regexp.MustCompile(`^` + number + `(?:d(?:ays?)?)?$`)},
	{unitHours, regexp.MustCompile(`^` + number + `h(?:ours?)?$`)},
	{unitMinutes, regexp.MustCompile(`^` + number + `m(?:inutes?)?$`)},
}

// ParseGitlab parses whitespace separated tokens such as "1y 2mo 1w 3d 5h 30m".
// A bare number counts as days. Units may repeat and are summed. Tokens that
// match no unit are logged and skipped.
func ParseGitlab(s string) (Duration, error) {
	var c components
	for _, token := range strings.Fields(s) {
		unit, value, ok := matchGitlabToken(token)
		if !ok {
			log.Warn("Skipping unrecognized duration token", log.String("token", token), log.String("input", s))
			continue
		}

		switch unit {
		case unitYears:
			c.years += value
		case unitMonths:
			c.months += value
		case unitWeeks:
			c.weeks += value
		case unitDays:
			c.days += value
		case unitHours:
			c.hours += value
		case unitMinutes:
			if value <= maxAmbiguousMonths {
				c.months += value
			} else {
				c.minutes += value
			}
		}
	}
	return newDuration(c), nil
}

func matchGitlabToken(token string) (gitlabUnit, float64, bool) {
	for _, p := range gitlabPatterns {
		m := p.pattern.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		v, err := parseNumber(m[1])
		if err != nil {
			return 0, 0, false
		}
		return p.unit, v, true
	}
	return 0, 0, false
}
