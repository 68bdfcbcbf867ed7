package event

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// subtypeKinds maps wlan.fc.type_subtype codes to frame kinds. The table is
// closed: any other subtype falls through to EAPOL/EAP/OTHER classification.
var subtypeKinds = map[string]FrameKind{
	"0x0b": KindAuth,
	"0x00": KindAssocReq,
	"0x01": KindAssocResp,
	"0x0a": KindDisassoc,
	"0x0c": KindDeauth,
}

// Normalize converts dissected rows into classified events sorted ascending
// by timestamp (stable on ties), then resolves leftover EAPOL-Key frames
// into handshake steps by direction. It is total: malformed field values
// degrade to defaults, and the result always has one event per input row.
func Normalize(rows []Row) []Event {
	events := make([]Event, 0, len(rows))
	for _, r := range rows {
		e := Event{
			SequenceNo:     r[FieldFrameNumber],
			Timestamp:      parseTimestamp(r[FieldTimeEpoch]),
			SourceMAC:      r[FieldSourceAddr],
			DestMAC:        r[FieldDestAddr],
			BSSID:          r[FieldBSSID],
			Kind:           classify(r),
			SSID:           ssidOf(r),
			AKM:            r[FieldAKM],
			PairwiseCipher: r[FieldPairwise],
			GroupCipher:    r[FieldGroup],
			PMFRequired:    parseTristate(r[FieldPMFRequired]),
			PMFCapable:     parseTristate(r[FieldPMFCapable]),
			EAPCode:        r[FieldEAPCode],
			EAPType:        r[FieldEAPType],
			EAPSuccess:     r[FieldEAPSuccess],
			KeyInfoRaw:     r[FieldKeyInfo],
			ReplayCounter:  r[FieldReplayCounter],
			MIC:            r[FieldMIC],
		}
		events = append(events, e)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	inferHandshakeByDirection(events)
	return events
}

// classify assigns the frame kind from a single row, first match wins.
func classify(r Row) FrameKind {
	if k, ok := subtypeKinds[r[FieldSubtype]]; ok {
		return k
	}
	if r[FieldEAPOLType] != "" {
		return classifyKeyInfo(ParseKeyInfo(r[FieldKeyInfo]))
	}
	if r[FieldEAPCode] != "" {
		return KindEAP
	}
	return KindOther
}

// classifyKeyInfo maps key-info bits to a handshake step.
// Arms apply in order, first match wins.
func classifyKeyInfo(ki KeyInfo) FrameKind {
	ack := ki.Has(KeyInfoACK)
	mic := ki.Has(KeyInfoMIC)
	secure := ki.Has(KeyInfoSecure)

	switch {
	case ack && !mic:
		return KindHandshake1
	case mic && !ack:
		return KindHandshake2
	case ack && mic:
		return KindHandshake3
	case mic && secure && !ack:
		return KindHandshake4
	default:
		return KindEAPOLKey
	}
}

// ParseKeyInfo decodes a key-info string, accepting hex with a 0x prefix or
// plain decimal. Empty or malformed input decodes to 0.
func ParseKeyInfo(s string) KeyInfo {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0
	}
	return KeyInfo(v)
}

// inferHandshakeByDirection upgrades still-unclassified EAPOL-Key events to
// handshake steps by walking the expected AP, STA, AP, STA alternation in
// time order. Events with unknown or mismatching direction are skipped and
// there is no backtracking, so retransmissions can leave steps unassigned;
// the handshake completeness check reports that as a missing handshake.
func inferHandshakeByDirection(events []Event) {
	need := [...]Direction{DirectionAP, DirectionSTA, DirectionAP, DirectionSTA}
	step := 0
	for i := range events {
		if step >= len(need) {
			return
		}
		if events[i].Kind != KindEAPOLKey {
			continue
		}
		if events[i].Direction() == need[step] {
			events[i].Kind = KindHandshake1 + FrameKind(step)
			step++
		}
	}
}

func ssidOf(r Row) string {
	if s := r[FieldSSID]; s != "" {
		return s
	}
	return r[FieldFixedSSID]
}

func parseTimestamp(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func parseTristate(s string) Tristate {
	switch s {
	case "":
		return TristateAbsent
	case "1", "true", "True":
		return TristateTrue
	default:
		return TristateFalse
	}
}
