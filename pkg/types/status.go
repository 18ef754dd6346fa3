package types

type Status int

var (
	// Statuses is a list of assessment statuses.
	// VEX has 4 statuses: not-affected, affected, fixed, and under_investigation.
	// cf. https://www.cisa.gov/sites/default/files/2023-04/minimum-requirements-for-vex-508c.pdf
	//
	// The dashboard adds "will_not_fix" and "fix_deferred" for accepted risks.
	Statuses = []string{
		"unknown",
		"not_affected",
		"affected",
		"fixed",
		"under_investigation",
		"will_not_fix",
		"fix_deferred",
	}
)

const (
	StatusUnknown Status = iota
	StatusNotAffected
	StatusAffected
	StatusFixed
	StatusUnderInvestigation
	StatusWillNotFix
	StatusFixDeferred
)

func NewStatus(status string) Status {
	for i, s := range Statuses {
		if status == s {
			return Status(i)
		}
	}
	return StatusUnknown
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(Statuses) {
		return Statuses[0]
	}
	return Statuses[s]
}

func (s Status) Index() int {
	return int(s)
}

// Open reports whether the vulnerability still needs remediation work.
func (s Status) Open() bool {
	switch s {
	case StatusAffected, StatusUnderInvestigation, StatusUnknown:
		return true
	}
	return false
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = NewStatus(string(text))
	return nil
}
