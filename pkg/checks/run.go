package checks

import (
	"fmt"
	"strings"

	"github.com/wifivet/wifivet/pkg/event"
)

// Mode selects which rule set Run applies.
type Mode string

const (
	// ModePSK validates a WPA2-PSK association.
	ModePSK Mode = "psk"
	// ModeSAE validates a WPA3-SAE association.
	ModeSAE Mode = "sae"
	// ModeEAP validates an 802.1X/EAP authentication.
	ModeEAP Mode = "eap"
)

// ParseMode parses a mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "psk":
		return ModePSK, nil
	case "sae":
		return ModeSAE, nil
	case "eap":
		return ModeEAP, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be psk, sae, or eap)", s)
	}
}

// Run applies the rule set for mode with the conventional expectation
// defaults: PSK expects AKM "PSK" unless overridden; EAP leaves AKM
// unconstrained, defaults ciphers to CCMP, and appends the PSK substrate's
// non-PASS verdicts after the EAP gates. SAE handles its own defaults.
func Run(mode Mode, events []event.Event, exp Expected) []Verdict {
	switch mode {
	case ModePSK:
		if exp.AKM == "" {
			exp.AKM = "PSK"
		}
		return CheckPSK(events, exp)
	case ModeSAE:
		return CheckSAE(events, exp)
	case ModeEAP:
		if exp.Pairwise == "" {
			exp.Pairwise = "CCMP"
		}
		if exp.Group == "" {
			exp.Group = "CCMP"
		}
		verdicts := CheckEAPEnterprise(events)
		return append(verdicts, withoutPass(CheckPSK(events, exp))...)
	default:
		return nil
	}
}

// withoutPass drops PASS entries when composing rule sets, so only one
// rule set's PASS line survives in a combined result.
func withoutPass(verdicts []Verdict) []Verdict {
	var out []Verdict
	for _, v := range verdicts {
		if v.Severity != SeverityPass {
			out = append(out, v)
		}
	}
	return out
}
