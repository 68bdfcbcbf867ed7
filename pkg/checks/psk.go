package checks

import (
	"strconv"
	"strings"

	"github.com/wifivet/wifivet/pkg/event"
)

// CheckPSK runs the baseline WPA2-PSK rule set over normalized events.
// It is also the shared substrate the SAE and EAP modes build on.
func CheckPSK(events []event.Event, exp Expected) []Verdict {
	var verdicts []Verdict

	// RSN suite consistency during association. Expected values use
	// substring containment so dissector notations like "CCMP (AES)" or
	// multi-suite lists still match.
	rsnSeen := false
	for _, e := range events {
		if !e.Kind.IsAssociation() {
			continue
		}
		if exp.SSID != "" && e.SSID != exp.SSID {
			continue
		}
		rsnSeen = true
		if exp.Pairwise != "" && !strings.Contains(e.PairwiseCipher, exp.Pairwise) {
			verdicts = append(verdicts, failf("pairwise cipher mismatch: expected %s, actual %s (frame %s)",
				exp.Pairwise, e.PairwiseCipher, e.SequenceNo))
		}
		if exp.Group != "" && !strings.Contains(e.GroupCipher, exp.Group) {
			verdicts = append(verdicts, failf("group cipher mismatch: expected %s, actual %s (frame %s)",
				exp.Group, e.GroupCipher, e.SequenceNo))
		}
		if exp.AKM != "" && !strings.Contains(e.AKM, exp.AKM) {
			verdicts = append(verdicts, failf("AKM mismatch: expected %s, actual %s (frame %s)",
				exp.AKM, e.AKM, e.SequenceNo))
		}
	}
	if !rsnSeen {
		verdicts = append(verdicts, Verdict{SeverityWarn, "RSN fields not observed during association"})
	}

	// 4-way handshake completeness: step 1 must be seen before the last
	// step 4. Retries are allowed in between.
	var steps []int
	var kinds []string
	for _, e := range events {
		if e.Kind.IsHandshake() {
			steps = append(steps, e.Kind.HandshakeStep())
			kinds = append(kinds, e.Kind.String())
		}
	}
	if len(steps) == 0 {
		verdicts = append(verdicts, Verdict{SeverityFail, "no 4-way handshake detected"})
	} else {
		first1, last4 := -1, -1
		for i, s := range steps {
			if s == 1 && first1 == -1 {
				first1 = i
			}
			if s == 4 {
				last4 = i
			}
		}
		switch {
		case first1 == -1 || last4 == -1:
			verdicts = append(verdicts, failf("4-way handshake incomplete: %v", kinds))
		case first1 >= last4:
			verdicts = append(verdicts, failf("4-way handshake out of order: %v", kinds))
		}
	}

	// Replay counter monotonicity across handshake frames. Non-numeric
	// counters are excluded from the sequence, not treated as violations.
	var counters []uint64
	for _, e := range events {
		if !e.Kind.IsHandshake() {
			continue
		}
		rc, err := strconv.ParseUint(e.ReplayCounter, 10, 64)
		if err != nil {
			continue
		}
		counters = append(counters, rc)
	}
	for i := 0; i+1 < len(counters); i++ {
		if counters[i] > counters[i+1] {
			verdicts = append(verdicts, failf("replay counter not monotonic: %v", counters))
			break
		}
	}

	// Handshake messages 2..4 carry a MIC.
	var micMissing []string
	for _, e := range events {
		if e.Kind.HandshakeStep() >= 2 && e.MIC == "" {
			micMissing = append(micMissing, e.SequenceNo)
		}
	}
	if len(micMissing) > 0 {
		verdicts = append(verdicts, failf("handshake messages missing MIC: frames %v", micMissing))
	}

	if len(verdicts) == 0 {
		verdicts = append(verdicts, Verdict{SeverityPass, "baseline PSK checks passed"})
	}
	return verdicts
}
