package checks

import (
	"strings"

	"github.com/wifivet/wifivet/pkg/event"
)

// CheckSAE runs the WPA3-SAE rule set: PMF and AKM=SAE presence first, then
// the PSK substrate with SAE defaults, keeping only its non-PASS verdicts so
// a combined run surfaces a single PASS line.
func CheckSAE(events []event.Event, exp Expected) []Verdict {
	var verdicts []Verdict

	pmfSeen := false
	akmSAE := false
	for _, e := range events {
		if !e.Kind.IsAssociation() {
			continue
		}
		if e.PMFRequired.True() || e.PMFCapable.True() {
			pmfSeen = true
		}
		if strings.Contains(e.AKM, "SAE") {
			akmSAE = true
		}
	}
	if !pmfSeen {
		verdicts = append(verdicts, failf("PMF not advertised in association frames (WPA3-SAE expects the required or capable bit)"))
	}
	if !akmSAE {
		verdicts = append(verdicts, failf("AKM SAE not observed in association frames"))
	}
	if len(verdicts) == 0 {
		verdicts = append(verdicts, Verdict{SeverityPass, "WPA3-SAE baseline, including PMF & AKM=SAE, passed"})
	}

	sub := exp
	if sub.AKM == "" {
		sub.AKM = "SAE"
	}
	if sub.Pairwise == "" {
		sub.Pairwise = "CCMP"
	}
	if sub.Group == "" {
		sub.Group = "CCMP"
	}
	return append(verdicts, withoutPass(CheckPSK(events, sub))...)
}
