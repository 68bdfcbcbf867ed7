package checks

import "github.com/wifivet/wifivet/pkg/event"

// CheckEAPEnterprise gates an 802.1X run: an EAP session must be observed,
// must succeed, and must be followed by a 4-way handshake. Gates apply in
// order and the first failed gate is returned alone, so the result is
// always exactly one verdict.
func CheckEAPEnterprise(events []event.Event) []Verdict {
	sawEAP := false
	succeeded := false
	for _, e := range events {
		if e.Kind != event.KindEAP {
			continue
		}
		sawEAP = true
		if eapSucceeded(e.EAPSuccess) {
			succeeded = true
		}
	}
	if !sawEAP {
		return []Verdict{{SeverityFail, "no EAP session detected"}}
	}
	if !succeeded {
		return []Verdict{{SeverityFail, "no EAP success observed"}}
	}

	for _, e := range events {
		if e.Kind.IsHandshake() {
			return []Verdict{{SeverityPass, "EAP baseline passed: EAP succeeded and entered the 4-way handshake"}}
		}
	}
	return []Verdict{{SeverityFail, "no 4-way handshake after EAP success"}}
}

func eapSucceeded(s string) bool {
	switch s {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
