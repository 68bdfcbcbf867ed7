package eventlog

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/wifivet/wifivet/pkg/event"
)

// logEncMode is the CBOR encoder mode for event logs.
// Configured for deterministic encoding so identical event slices produce
// identical files.
var logEncMode cbor.EncMode

// logDecMode is the CBOR decoder mode for event logs.
var logDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	logEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event log CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	logDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event log CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR bytes using integer keys for compactness.
func EncodeEvent(ev event.Event) ([]byte, error) {
	return logEncMode.Marshal(ev)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (event.Event, error) {
	var ev event.Event
	if err := logDecMode.Unmarshal(data, &ev); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

// NewEncoder creates a CBOR encoder for event logs that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return logEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for event logs that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}
