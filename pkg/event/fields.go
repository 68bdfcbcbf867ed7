package event

// Dissector field names consumed by Normalize. Extraction backends request
// exactly these names and must preserve their spelling in Row keys.
const (
	FieldFrameNumber = "frame.number"
	FieldTimeEpoch   = "frame.time_epoch"
	FieldSourceAddr  = "wlan.sa"
	FieldDestAddr    = "wlan.da"
	FieldBSSID       = "wlan.bssid"
	FieldSubtype     = "wlan.fc.type_subtype"

	FieldSSID        = "wlan_mgt.ssid"
	FieldFixedSSID   = "wlan_mgt.fixed.ssid"
	FieldAKM         = "rsn.akms.type"
	FieldPairwise    = "rsn.pcs.list"
	FieldGroup       = "rsn.gcs.type"
	FieldPMFRequired = "rsn.capabilities.mgmt_frame_protection_required"
	FieldPMFCapable  = "rsn.capabilities.mgmt_frame_protection_capable"

	FieldEAPOLType     = "eapol.type"
	FieldEAPOLKeyType  = "eapol.keydes.type"
	FieldKeyInfo       = "eapol.keydes.key_info"
	FieldReplayCounter = "eapol.keydes.replay_counter"
	FieldMIC           = "eapol.keydes.mic"

	FieldEAPCode    = "eap.code"
	FieldEAPType    = "eap.type"
	FieldEAPSuccess = "eap.success"
)

// Field groups, in extraction order.
var (
	FieldsCommon = []string{
		FieldFrameNumber,
		FieldTimeEpoch,
		FieldSourceAddr,
		FieldDestAddr,
		FieldBSSID,
		FieldSubtype,
	}

	FieldsManagement = []string{
		FieldSSID,
		FieldFixedSSID,
		FieldAKM,
		FieldPairwise,
		FieldGroup,
		FieldPMFRequired,
		FieldPMFCapable,
	}

	FieldsEAPOL = []string{
		FieldEAPOLType,
		FieldEAPOLKeyType,
		FieldKeyInfo,
		FieldReplayCounter,
		FieldMIC,
	}

	FieldsEAP = []string{
		FieldEAPCode,
		FieldEAPType,
		FieldEAPSuccess,
	}
)

// AllFields returns the full extraction field list
// (common, management, EAPOL, EAP), deduplicated preserving order.
func AllFields() []string {
	groups := [][]string{FieldsCommon, FieldsManagement, FieldsEAPOL, FieldsEAP}
	seen := make(map[string]bool)
	var ordered []string
	for _, g := range groups {
		for _, f := range g {
			if !seen[f] {
				seen[f] = true
				ordered = append(ordered, f)
			}
		}
	}
	return ordered
}
