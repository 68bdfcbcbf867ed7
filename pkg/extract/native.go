package extract

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/wifivet/wifivet/pkg/event"
)

// pcapng section header block type; the byte sequence reads the same under
// either endianness.
const pcapngMagic = 0x0a0d0d0a

// NativeBackend dissects pcap and pcapng captures in process.
// No external dissector is required; monitor-mode captures (Radiotap or
// bare 802.11) and wired 802.1X captures (Ethernet) are supported.
type NativeBackend struct{}

// Name implements Backend.
func (b *NativeBackend) Name() string { return "native" }

// packetSource is the part of the pcapgo readers the backend consumes.
type packetSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Extract implements Backend. Frame numbers count every packet in the
// capture, not only the emitted ones, so they line up with what other
// dissectors display for the same file.
func (b *NativeBackend) Extract(ctx context.Context, path string) ([]event.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := openCapture(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	decoder, err := linkDecoder(src.LinkType())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []event.Row
	for frameNo := 1; ; frameNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, ci, err := src.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: reading frame %d: %w", path, frameNo, err)
		}

		packet := gopacket.NewPacket(data, decoder, gopacket.Default)
		if row := dissect(packet, frameNo, ci); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// openCapture picks the pcap or pcapng reader by file magic.
func openCapture(f *os.File) (packetSource, error) {
	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, fmt.Errorf("reading capture magic: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if binary.BigEndian.Uint32(magic[:]) == pcapngMagic {
		return pcapgo.NewNgReader(f, pcapgo.DefaultNgReaderOptions)
	}
	return pcapgo.NewReader(f)
}

// linkDecoder maps the capture link type to the outermost packet layer.
func linkDecoder(lt layers.LinkType) (gopacket.Decoder, error) {
	switch lt {
	case layers.LinkTypeIEEE80211Radio:
		return layers.LayerTypeRadioTap, nil
	case layers.LinkTypeIEEE802_11:
		return layers.LayerTypeDot11, nil
	case layers.LinkTypeEthernet:
		return layers.LayerTypeEthernet, nil
	default:
		return nil, fmt.Errorf("unsupported link type %v", lt)
	}
}

// dissect turns one decoded packet into a row, or nil for frames outside
// the association/authentication flow (control frames, ordinary data).
func dissect(packet gopacket.Packet, frameNo int, ci gopacket.CaptureInfo) event.Row {
	row := event.Row{
		event.FieldFrameNumber: strconv.Itoa(frameNo),
		event.FieldTimeEpoch:   fmt.Sprintf("%.9f", float64(ci.Timestamp.UnixNano())/1e9),
	}

	interesting := false

	if dot11, ok := packet.Layer(layers.LayerTypeDot11).(*layers.Dot11); ok {
		sa, da, bssid := dot11Addresses(dot11)
		setNonEmpty(row, event.FieldSourceAddr, sa)
		setNonEmpty(row, event.FieldDestAddr, da)
		setNonEmpty(row, event.FieldBSSID, bssid)
		row[event.FieldSubtype] = typeSubtypeCode(dot11.Type)

		if dot11.Type.MainType() == layers.Dot11TypeMgmt {
			interesting = true
			dissectElements(packet, row)
		}
	} else if eth, ok := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet); ok {
		// Wired 802.1X capture: only station and authenticator
		// addresses exist.
		setNonEmpty(row, event.FieldSourceAddr, eth.SrcMAC.String())
		setNonEmpty(row, event.FieldDestAddr, eth.DstMAC.String())
	}

	if key, ok := packet.Layer(layers.LayerTypeEAPOLKey).(*layers.EAPOLKey); ok {
		interesting = true
		if eapol, ok := packet.Layer(layers.LayerTypeEAPOL).(*layers.EAPOL); ok {
			row[event.FieldEAPOLType] = strconv.Itoa(int(eapol.Type))
		}
		dissectEAPOLKey(key, row)
	} else if eap, ok := packet.Layer(layers.LayerTypeEAP).(*layers.EAP); ok {
		interesting = true
		dissectEAP(eap, row)
	}

	if !interesting {
		return nil
	}
	return row
}

// dot11Addresses resolves SA, DA and BSSID from the four address slots
// according to the ToDS/FromDS combination.
func dot11Addresses(d *layers.Dot11) (sa, da, bssid string) {
	to, from := d.Flags.ToDS(), d.Flags.FromDS()
	switch {
	case !to && !from:
		da = d.Address1.String()
		sa = d.Address2.String()
		bssid = d.Address3.String()
	case to && !from:
		bssid = d.Address1.String()
		sa = d.Address2.String()
		da = d.Address3.String()
	case !to && from:
		da = d.Address1.String()
		bssid = d.Address2.String()
		sa = d.Address3.String()
	default:
		// Wireless bridge: four addresses, no BSSID.
		da = d.Address3.String()
		sa = d.Address4.String()
	}
	return sa, da, bssid
}

// typeSubtypeCode renders the frame control type/subtype the way the
// dissector prints wlan.fc.type_subtype.
func typeSubtypeCode(t layers.Dot11Type) string {
	main := uint8(t.MainType())
	sub := uint8(t) >> 2
	return fmt.Sprintf("0x%02x", main<<4|sub)
}

// dissectElements extracts the SSID and RSN fields from a management
// frame's information elements.
func dissectElements(packet gopacket.Packet, row event.Row) {
	for _, layer := range packet.Layers() {
		el, ok := layer.(*layers.Dot11InformationElement)
		if !ok {
			continue
		}
		switch el.ID {
		case layers.Dot11InformationElementIDSSID:
			// Zero length means the SSID is hidden.
			if len(el.Info) > 0 {
				row[event.FieldSSID] = string(el.Info)
			}
		case layers.Dot11InformationElementIDRSNInfo:
			rsn, err := parseRSN(el.Info)
			if err != nil {
				continue
			}
			// First listed suite only, matching the dissector's
			// first-occurrence output.
			if len(rsn.pairwise) > 0 {
				row[event.FieldPairwise] = rsn.pairwise[0]
			}
			if rsn.group != "" {
				row[event.FieldGroup] = rsn.group
			}
			if len(rsn.akms) > 0 {
				row[event.FieldAKM] = rsn.akms[0]
			}
			if rsn.capsPresent {
				row[event.FieldPMFRequired] = boolField(rsn.mfpRequired)
				row[event.FieldPMFCapable] = boolField(rsn.mfpCapable)
			}
		}
	}
}

func dissectEAPOLKey(key *layers.EAPOLKey, row event.Row) {
	row[event.FieldEAPOLKeyType] = strconv.Itoa(int(key.KeyDescriptorType))
	row[event.FieldKeyInfo] = fmt.Sprintf("0x%04x", keyInfoBits(key))
	row[event.FieldReplayCounter] = strconv.FormatUint(key.ReplayCounter, 10)
	for _, b := range key.MIC {
		if b != 0 {
			row[event.FieldMIC] = hex.EncodeToString(key.MIC)
			break
		}
	}
}

func dissectEAP(eap *layers.EAP, row event.Row) {
	row[event.FieldEAPCode] = strconv.Itoa(int(eap.Code))
	switch eap.Code {
	case layers.EAPCodeRequest, layers.EAPCodeResponse:
		row[event.FieldEAPType] = strconv.Itoa(int(eap.Type))
	case layers.EAPCodeSuccess:
		row[event.FieldEAPSuccess] = "1"
	}
}

// keyInfoBits reassembles the on-wire key information bitfield from the
// decoded flags.
func keyInfoBits(key *layers.EAPOLKey) uint16 {
	bits := uint16(key.KeyDescriptorVersion) & 0x0007
	if key.KeyType == layers.EAPOLKeyTypePairwise {
		bits |= 1 << 3
	}
	bits |= uint16(key.KeyIndex&0x03) << 4
	if key.Install {
		bits |= 1 << 6
	}
	if key.KeyACK {
		bits |= 1 << 7
	}
	if key.KeyMIC {
		bits |= 1 << 8
	}
	if key.Secure {
		bits |= 1 << 9
	}
	if key.MICError {
		bits |= 1 << 10
	}
	if key.Request {
		bits |= 1 << 11
	}
	if key.HasEncryptedKeyData {
		bits |= 1 << 12
	}
	if key.SMKMessage {
		bits |= 1 << 13
	}
	return bits
}

func setNonEmpty(row event.Row, field, value string) {
	if value != "" {
		row[field] = value
	}
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
