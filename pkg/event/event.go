package event

import (
	"fmt"
	"strings"
)

// Row is one dissected frame: dotted dissector field name to string value.
// Absent fields are "" (map lookups of missing keys also yield "").
type Row map[string]string

// Event is a normalized Wi-Fi flow event derived from one capture row.
// Constructed once by Normalize and not mutated afterwards.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// SequenceNo is the capture frame number, kept opaque for diagnostics.
	SequenceNo string `cbor:"1,keyasint,omitempty"`

	// Timestamp is the capture time in epoch seconds (0 when unknown).
	Timestamp float64 `cbor:"2,keyasint"`

	// SourceMAC, DestMAC and BSSID are the resolved 802.11 addresses.
	SourceMAC string `cbor:"3,keyasint,omitempty"`
	DestMAC   string `cbor:"4,keyasint,omitempty"`
	BSSID     string `cbor:"5,keyasint,omitempty"`

	// Kind classifies the frame within the association/authentication flow.
	Kind FrameKind `cbor:"6,keyasint"`

	// SSID from the management frame, when present.
	SSID string `cbor:"7,keyasint,omitempty"`

	// RSN suite fields in dissector notation.
	AKM            string `cbor:"8,keyasint,omitempty"`
	PairwiseCipher string `cbor:"9,keyasint,omitempty"`
	GroupCipher    string `cbor:"10,keyasint,omitempty"`

	// Management frame protection capability bits from the RSN IE.
	PMFRequired Tristate `cbor:"11,keyasint,omitempty"`
	PMFCapable  Tristate `cbor:"12,keyasint,omitempty"`

	// EAP fields (802.1X flows).
	EAPCode    string `cbor:"13,keyasint,omitempty"`
	EAPType    string `cbor:"14,keyasint,omitempty"`
	EAPSuccess string `cbor:"15,keyasint,omitempty"`

	// KeyInfoRaw is the unparsed EAPOL key-info bitfield
	// (hex with 0x prefix or plain decimal, dissector dependent).
	KeyInfoRaw string `cbor:"16,keyasint,omitempty"`

	// ReplayCounter is the EAPOL replay counter, decimal when well formed.
	ReplayCounter string `cbor:"17,keyasint,omitempty"`

	// MIC is the EAPOL message integrity code, "" when absent.
	MIC string `cbor:"18,keyasint,omitempty"`
}

// Direction resolves which side of the association sent the event,
// matching source or destination against the BSSID.
func (e Event) Direction() Direction {
	if e.SourceMAC != "" && e.BSSID != "" && e.SourceMAC == e.BSSID {
		return DirectionAP
	}
	if e.DestMAC != "" && e.BSSID != "" && e.DestMAC == e.BSSID {
		return DirectionSTA
	}
	return DirectionUnknown
}

// FrameKind classifies a frame within the association/authentication flow.
type FrameKind uint8

const (
	// KindOther is any frame outside the flow windows checked here.
	KindOther FrameKind = 0
	// KindAuth is an 802.11 Authentication frame.
	KindAuth FrameKind = 1
	// KindAssocReq is an Association Request.
	KindAssocReq FrameKind = 2
	// KindAssocResp is an Association Response.
	KindAssocResp FrameKind = 3
	// KindDisassoc is a Disassociation frame.
	KindDisassoc FrameKind = 4
	// KindDeauth is a Deauthentication frame.
	KindDeauth FrameKind = 5
	// KindHandshake1..4 are the 4-way handshake messages, in order.
	// The four values are contiguous so step arithmetic works.
	KindHandshake1 FrameKind = 6
	KindHandshake2 FrameKind = 7
	KindHandshake3 FrameKind = 8
	KindHandshake4 FrameKind = 9
	// KindEAPOLKey is an EAPOL-Key frame not attributed to a handshake step.
	KindEAPOLKey FrameKind = 10
	// KindEAP is an EAP frame (802.1X exchanges).
	KindEAP FrameKind = 11
)

// String returns the flow label used in listings and reports.
func (k FrameKind) String() string {
	switch k {
	case KindOther:
		return "OTHER"
	case KindAuth:
		return "AUTH"
	case KindAssocReq:
		return "ASSOC_REQ"
	case KindAssocResp:
		return "ASSOC_RESP"
	case KindDisassoc:
		return "DISASSOC"
	case KindDeauth:
		return "DEAUTH"
	case KindHandshake1, KindHandshake2, KindHandshake3, KindHandshake4:
		return fmt.Sprintf("4WH-%d", k.HandshakeStep())
	case KindEAPOLKey:
		return "EAPOL-KEY"
	case KindEAP:
		return "EAP"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// IsHandshake reports whether the kind is one of the 4-way handshake steps.
func (k FrameKind) IsHandshake() bool {
	return k >= KindHandshake1 && k <= KindHandshake4
}

// HandshakeStep returns the handshake step (1..4), or 0 for other kinds.
func (k FrameKind) HandshakeStep() int {
	if !k.IsHandshake() {
		return 0
	}
	return int(k-KindHandshake1) + 1
}

// IsAssociation reports whether the kind is an association request or response.
func (k FrameKind) IsAssociation() bool {
	return k == KindAssocReq || k == KindAssocResp
}

// ParseFrameKind parses a flow label (case-insensitive) as printed by String.
func ParseFrameKind(s string) (FrameKind, error) {
	switch strings.ToUpper(s) {
	case "OTHER":
		return KindOther, nil
	case "AUTH":
		return KindAuth, nil
	case "ASSOC_REQ":
		return KindAssocReq, nil
	case "ASSOC_RESP":
		return KindAssocResp, nil
	case "DISASSOC":
		return KindDisassoc, nil
	case "DEAUTH":
		return KindDeauth, nil
	case "4WH-1":
		return KindHandshake1, nil
	case "4WH-2":
		return KindHandshake2, nil
	case "4WH-3":
		return KindHandshake3, nil
	case "4WH-4":
		return KindHandshake4, nil
	case "EAPOL-KEY":
		return KindEAPOLKey, nil
	case "EAP":
		return KindEAP, nil
	default:
		return 0, fmt.Errorf("unknown frame kind: %s", s)
	}
}

// Direction indicates which side of the association sent a frame.
type Direction uint8

const (
	// DirectionUnknown means neither address matched the BSSID.
	DirectionUnknown Direction = 0
	// DirectionAP means the frame came from the access point.
	DirectionAP Direction = 1
	// DirectionSTA means the frame came from the station.
	DirectionSTA Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionAP:
		return "AP"
	case DirectionSTA:
		return "STA"
	default:
		return "UNKNOWN"
	}
}

// Tristate is a flag that may be absent from the capture entirely.
type Tristate uint8

const (
	// TristateAbsent means the field was not present in the row.
	TristateAbsent Tristate = 0
	// TristateFalse means the field was present and falsy.
	TristateFalse Tristate = 1
	// TristateTrue means the field was present and truthy.
	TristateTrue Tristate = 2
)

// True reports whether the flag was present and truthy.
func (t Tristate) True() bool { return t == TristateTrue }

// String returns the flag state name.
func (t Tristate) String() string {
	switch t {
	case TristateFalse:
		return "FALSE"
	case TristateTrue:
		return "TRUE"
	default:
		return "ABSENT"
	}
}

// KeyInfo is the EAPOL-Key key-info bitfield.
type KeyInfo uint32

// Key-info bits used for handshake step classification.
const (
	KeyInfoPairwise KeyInfo = 1 << 3
	KeyInfoInstall  KeyInfo = 1 << 6
	KeyInfoACK      KeyInfo = 1 << 7
	KeyInfoMIC      KeyInfo = 1 << 8
	KeyInfoSecure   KeyInfo = 1 << 9
)

// Has reports whether all bits in flag are set.
func (k KeyInfo) Has(flag KeyInfo) bool { return k&flag == flag }
