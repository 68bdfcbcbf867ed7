package event

import (
	"reflect"
	"testing"
)

const (
	apMAC  = "aa:bb:cc:dd:ee:ff"
	staMAC = "11:22:33:44:55:66"
)

// eapolRow builds an EAPOL-Key row without key-info bits, so classification
// falls to the directional pass.
func eapolRow(no, ts, sa, da string) Row {
	return Row{
		FieldFrameNumber: no,
		FieldTimeEpoch:   ts,
		FieldSourceAddr:  sa,
		FieldDestAddr:    da,
		FieldBSSID:       apMAC,
		FieldEAPOLType:   "3",
	}
}

func TestClassifySubtypeTable(t *testing.T) {
	tests := []struct {
		subtype string
		want    FrameKind
	}{
		{"0x0b", KindAuth},
		{"0x00", KindAssocReq},
		{"0x01", KindAssocResp},
		{"0x0a", KindDisassoc},
		{"0x0c", KindDeauth},
		{"0x08", KindOther}, // beacon: not in the table
		{"", KindOther},
	}

	for _, tt := range tests {
		got := classify(Row{FieldSubtype: tt.subtype})
		if got != tt.want {
			t.Errorf("classify(subtype %q) = %v, want %v", tt.subtype, got, tt.want)
		}
	}
}

func TestClassifySubtypeWinsOverEAPOL(t *testing.T) {
	r := Row{
		FieldSubtype:   "0x00",
		FieldEAPOLType: "3",
		FieldKeyInfo:   "0x008a",
	}
	if got := classify(r); got != KindAssocReq {
		t.Errorf("classify = %v, want %v", got, KindAssocReq)
	}
}

func TestClassifyKeyInfoBits(t *testing.T) {
	tests := []struct {
		keyInfo string
		want    FrameKind
	}{
		{"0x008a", KindHandshake1}, // ACK, no MIC
		{"138", KindHandshake1},    // same value, decimal
		{"0x010a", KindHandshake2}, // MIC, no ACK
		{"0x13ca", KindHandshake3}, // ACK+MIC, install/secure do not matter
		{"0x01ca", KindHandshake3}, // ACK+MIC without install
		{"0x030a", KindHandshake2}, // MIC+Secure, no ACK: message-2 arm matches first
		{"0x0000", KindEAPOLKey},
		{"", KindEAPOLKey},
		{"bogus", KindEAPOLKey},
		{"0xzz", KindEAPOLKey},
	}

	for _, tt := range tests {
		r := Row{FieldEAPOLType: "3", FieldKeyInfo: tt.keyInfo}
		if got := classify(r); got != tt.want {
			t.Errorf("classify(key_info %q) = %v, want %v", tt.keyInfo, got, tt.want)
		}
	}
}

func TestClassifyEAPAndOther(t *testing.T) {
	if got := classify(Row{FieldEAPCode: "1"}); got != KindEAP {
		t.Errorf("classify(eap.code 1) = %v, want %v", got, KindEAP)
	}
	// EAPOL presence outranks the EAP code.
	r := Row{FieldEAPOLType: "0", FieldEAPCode: "1"}
	if got := classify(r); got != KindEAPOLKey {
		t.Errorf("classify(eapol+eap) = %v, want %v", got, KindEAPOLKey)
	}
	if got := classify(Row{}); got != KindOther {
		t.Errorf("classify(empty) = %v, want %v", got, KindOther)
	}
}

func TestParseKeyInfo(t *testing.T) {
	tests := []struct {
		in   string
		want KeyInfo
	}{
		{"0x008a", 0x008a},
		{"0X008A", 0x008a},
		{"138", 138},
		{"010", 10}, // decimal, not octal
		{"0", 0},
		{"", 0},
		{"garbage", 0},
		{"-5", 0},
		{" 0x1ca ", 0x1ca},
	}

	for _, tt := range tests {
		if got := ParseKeyInfo(tt.in); got != tt.want {
			t.Errorf("ParseKeyInfo(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFieldMapping(t *testing.T) {
	rows := []Row{{
		FieldFrameNumber:   "42",
		FieldTimeEpoch:     "1723370000.125",
		FieldSourceAddr:    staMAC,
		FieldDestAddr:      apMAC,
		FieldBSSID:         apMAC,
		FieldSubtype:       "0x00",
		FieldSSID:          "CorpNet",
		FieldAKM:           "PSK",
		FieldPairwise:      "CCMP",
		FieldGroup:         "CCMP",
		FieldPMFRequired:   "0",
		FieldPMFCapable:    "1",
		FieldReplayCounter: "7",
		FieldMIC:           "abcdef",
	}}

	events := Normalize(rows)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.SequenceNo != "42" {
		t.Errorf("SequenceNo = %q, want %q", e.SequenceNo, "42")
	}
	if e.Timestamp != 1723370000.125 {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, 1723370000.125)
	}
	if e.Kind != KindAssocReq {
		t.Errorf("Kind = %v, want %v", e.Kind, KindAssocReq)
	}
	if e.SSID != "CorpNet" {
		t.Errorf("SSID = %q, want %q", e.SSID, "CorpNet")
	}
	if e.PMFRequired != TristateFalse || e.PMFCapable != TristateTrue {
		t.Errorf("PMF = %v/%v, want FALSE/TRUE", e.PMFRequired, e.PMFCapable)
	}
	if e.ReplayCounter != "7" || e.MIC != "abcdef" {
		t.Errorf("replay/MIC = %q/%q", e.ReplayCounter, e.MIC)
	}
}

func TestNormalizeSSIDFallback(t *testing.T) {
	events := Normalize([]Row{
		{FieldSubtype: "0x00", FieldFixedSSID: "FallbackNet"},
		{FieldSubtype: "0x00", FieldSSID: "Primary", FieldFixedSSID: "FallbackNet"},
	})

	if events[0].SSID != "FallbackNet" {
		t.Errorf("SSID = %q, want fallback value", events[0].SSID)
	}
	if events[1].SSID != "Primary" {
		t.Errorf("SSID = %q, want primary value", events[1].SSID)
	}
}

func TestNormalizeSortsByTimestamp(t *testing.T) {
	rows := []Row{
		{FieldFrameNumber: "3", FieldTimeEpoch: "30.0"},
		{FieldFrameNumber: "1", FieldTimeEpoch: "10.0"},
		{FieldFrameNumber: "2", FieldTimeEpoch: "20.0"},
	}

	events := Normalize(rows)
	want := []string{"1", "2", "3"}
	for i, no := range want {
		if events[i].SequenceNo != no {
			t.Errorf("events[%d].SequenceNo = %q, want %q", i, events[i].SequenceNo, no)
		}
	}
}

func TestNormalizeStableOnTies(t *testing.T) {
	rows := []Row{
		{FieldFrameNumber: "a", FieldTimeEpoch: "5.0"},
		{FieldFrameNumber: "b", FieldTimeEpoch: "5.0"},
		{FieldFrameNumber: "c"}, // no timestamp: 0, sorts first
		{FieldFrameNumber: "d", FieldTimeEpoch: "not-a-number"},
	}

	events := Normalize(rows)
	want := []string{"c", "d", "a", "b"}
	for i, no := range want {
		if events[i].SequenceNo != no {
			t.Errorf("events[%d].SequenceNo = %q, want %q", i, events[i].SequenceNo, no)
		}
	}
}

func TestDirectionalPassAssignsSteps(t *testing.T) {
	rows := []Row{
		eapolRow("1", "1.0", apMAC, staMAC),
		eapolRow("2", "2.0", staMAC, apMAC),
		eapolRow("3", "3.0", apMAC, staMAC),
		eapolRow("4", "4.0", staMAC, apMAC),
	}

	events := Normalize(rows)
	for i, want := range []FrameKind{KindHandshake1, KindHandshake2, KindHandshake3, KindHandshake4} {
		if events[i].Kind != want {
			t.Errorf("events[%d].Kind = %v, want %v", i, events[i].Kind, want)
		}
	}
}

func TestDirectionalPassSkipsUnknown(t *testing.T) {
	unknown := eapolRow("x", "1.5", staMAC, "77:88:99:aa:bb:cc")
	unknown[FieldBSSID] = ""

	rows := []Row{
		eapolRow("1", "1.0", apMAC, staMAC),
		unknown,
		eapolRow("2", "2.0", staMAC, apMAC),
	}

	events := Normalize(rows)
	if events[0].Kind != KindHandshake1 {
		t.Errorf("events[0].Kind = %v, want %v", events[0].Kind, KindHandshake1)
	}
	if events[1].Kind != KindEAPOLKey {
		t.Errorf("unknown-direction event reclassified to %v", events[1].Kind)
	}
	if events[2].Kind != KindHandshake2 {
		t.Errorf("events[2].Kind = %v, want %v", events[2].Kind, KindHandshake2)
	}
}

func TestDirectionalPassNoBacktracking(t *testing.T) {
	// First event is STA-originated while step 1 expects AP, so it stays
	// unclassified and the cursor does not advance past it.
	rows := []Row{
		eapolRow("1", "1.0", staMAC, apMAC),
		eapolRow("2", "2.0", apMAC, staMAC),
		eapolRow("3", "3.0", staMAC, apMAC),
		eapolRow("4", "4.0", apMAC, staMAC),
	}

	events := Normalize(rows)
	want := []FrameKind{KindEAPOLKey, KindHandshake1, KindHandshake2, KindHandshake3}
	for i := range want {
		if events[i].Kind != want[i] {
			t.Errorf("events[%d].Kind = %v, want %v", i, events[i].Kind, want[i])
		}
	}
}

func TestDirectionalPassLeavesBitClassifiedAlone(t *testing.T) {
	r := eapolRow("1", "1.0", apMAC, staMAC)
	r[FieldKeyInfo] = "0x010a" // bit-classified as step 2

	events := Normalize([]Row{r})
	if events[0].Kind != KindHandshake2 {
		t.Errorf("Kind = %v, want %v", events[0].Kind, KindHandshake2)
	}
}

func TestNormalizeTotalOnGarbage(t *testing.T) {
	rows := []Row{
		{},
		{FieldTimeEpoch: "NaN", FieldKeyInfo: "///", FieldEAPOLType: "??"},
		{FieldSubtype: "junk", FieldEAPCode: "\x00"},
		nil,
	}

	events := Normalize(rows)
	if len(events) != len(rows) {
		t.Fatalf("normalize returned %d events for %d rows", len(events), len(rows))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rows := []Row{
		eapolRow("1", "1.0", apMAC, staMAC),
		{FieldFrameNumber: "5", FieldSubtype: "0x0b", FieldTimeEpoch: "0.5"},
		eapolRow("2", "2.0", staMAC, apMAC),
	}

	first := Normalize(rows)
	second := Normalize(rows)
	if !reflect.DeepEqual(first, second) {
		t.Error("normalize is not deterministic for identical input")
	}
}
