package extract

import (
	"fmt"
)

// RSN capability bits consumed by the PMF checks.
const (
	rsnCapMFPRequired = 0x0040
	rsnCapMFPCapable  = 0x0080
)

// rsnInfo is the subset of the RSN information element (ID 48) the
// analyzer consumes.
type rsnInfo struct {
	version     uint16
	group       string
	pairwise    []string
	akms        []string
	capsPresent bool
	mfpRequired bool
	mfpCapable  bool
}

// parseRSN parses an RSN element body. Suite lists and the capability
// field are optional trailing sections, a truncated element keeps
// whatever parsed cleanly before the cut.
func parseRSN(data []byte) (*rsnInfo, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("RSN element too short: %d bytes", len(data))
	}

	rsn := &rsnInfo{}
	offset := 0

	rsn.version = uint16(data[offset]) | uint16(data[offset+1])<<8
	offset += 2

	// Group cipher suite (OUI + type)
	if offset+4 <= len(data) {
		rsn.group = cipherSuiteName(data[offset+3])
		offset += 4
	}

	// Pairwise cipher suite count + list
	if offset+2 <= len(data) {
		count := int(data[offset]) | int(data[offset+1])<<8
		offset += 2
		for i := 0; i < count && offset+4 <= len(data); i++ {
			rsn.pairwise = append(rsn.pairwise, cipherSuiteName(data[offset+3]))
			offset += 4
		}
	}

	// AKM suite count + list
	if offset+2 <= len(data) {
		count := int(data[offset]) | int(data[offset+1])<<8
		offset += 2
		for i := 0; i < count && offset+4 <= len(data); i++ {
			rsn.akms = append(rsn.akms, akmSuiteName(data[offset+3]))
			offset += 4
		}
	}

	// RSN capabilities
	if offset+2 <= len(data) {
		caps := uint16(data[offset]) | uint16(data[offset+1])<<8
		rsn.capsPresent = true
		rsn.mfpRequired = caps&rsnCapMFPRequired != 0
		rsn.mfpCapable = caps&rsnCapMFPCapable != 0
	}

	return rsn, nil
}

// cipherSuiteName maps a 00-0F-AC cipher suite type to the name the
// dissector prints.
func cipherSuiteName(typ byte) string {
	switch typ {
	case 1:
		return "WEP-40"
	case 2:
		return "TKIP"
	case 4:
		return "CCMP"
	case 5:
		return "WEP-104"
	case 8:
		return "GCMP-128"
	case 9:
		return "GCMP-256"
	case 10:
		return "CCMP-256"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", typ)
	}
}

// akmSuiteName maps a 00-0F-AC AKM suite type to the name the dissector
// prints.
func akmSuiteName(typ byte) string {
	switch typ {
	case 1:
		return "802.1X"
	case 2:
		return "PSK"
	case 3:
		return "FT-802.1X"
	case 4:
		return "FT-PSK"
	case 5:
		return "802.1X-SHA256"
	case 6:
		return "PSK-SHA256"
	case 8:
		return "SAE"
	case 9:
		return "FT-SAE"
	case 18:
		return "OWE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", typ)
	}
}
