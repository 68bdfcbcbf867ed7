package checks

import "fmt"

// Severity ranks a verdict outcome.
type Severity uint8

const (
	// SeverityPass means no violation was detected by the rule.
	SeverityPass Severity = 0
	// SeverityWarn means the capture lacks the data to assess the rule.
	SeverityWarn Severity = 1
	// SeverityFail means a protocol invariant was violated.
	SeverityFail Severity = 2
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "PASS"
	case SeverityWarn:
		return "WARN"
	case SeverityFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Verdict is one rule outcome: a severity plus a human-readable diagnostic,
// usually naming the offending frame numbers.
type Verdict struct {
	Severity Severity
	Message  string
}

// Expected holds the association parameters a capture is validated against.
// Empty values mean "no constraint, skip that sub-check".
type Expected struct {
	SSID     string
	Pairwise string
	Group    string
	AKM      string
}

// Worst returns the highest severity present, SeverityPass for an empty slice.
func Worst(verdicts []Verdict) Severity {
	worst := SeverityPass
	for _, v := range verdicts {
		if v.Severity > worst {
			worst = v.Severity
		}
	}
	return worst
}

func failf(format string, args ...any) Verdict {
	return Verdict{Severity: SeverityFail, Message: fmt.Sprintf(format, args...)}
}
