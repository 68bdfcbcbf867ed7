package eventlog

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/wifivet/wifivet/pkg/event"
)

// Filter specifies criteria for selecting events.
// Nil fields match all events for that criterion.
type Filter struct {
	// Kind selects events of exactly this frame kind.
	Kind *event.FrameKind

	// MAC selects events whose source, destination, or BSSID address
	// equals this value.
	MAC *string

	// SSID filters by exact SSID match.
	SSID *string

	// MinTime selects events at or after this capture timestamp.
	MinTime *float64

	// MaxTime selects events before this capture timestamp.
	MaxTime *float64

	// HandshakeOnly restricts to 4-way handshake messages.
	HandshakeOnly bool
}

// Matches returns true if the event satisfies all filter criteria.
func (f *Filter) Matches(ev event.Event) bool {
	if f.Kind != nil && ev.Kind != *f.Kind {
		return false
	}
	if f.MAC != nil && ev.SourceMAC != *f.MAC && ev.DestMAC != *f.MAC && ev.BSSID != *f.MAC {
		return false
	}
	if f.SSID != nil && ev.SSID != *f.SSID {
		return false
	}
	if f.MinTime != nil && ev.Timestamp < *f.MinTime {
		return false
	}
	if f.MaxTime != nil && ev.Timestamp >= *f.MaxTime {
		return false
	}
	if f.HandshakeOnly && !ev.Kind.IsHandshake() {
		return false
	}
	return true
}

// Reader reads events from a .wvlog file.
// It provides an iterator interface for streaming large logs.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
}

// NewReader creates a Reader for the specified event log.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
	}, nil
}

// Next returns the next event in the log.
// Returns io.EOF when no more events are available.
func (r *Reader) Next() (event.Event, error) {
	var ev event.Event
	if err := r.decoder.Decode(&ev); err != nil {
		if err == io.EOF {
			return event.Event{}, io.EOF
		}
		return event.Event{}, err
	}
	return ev, nil
}

// NextMatching returns the next event that satisfies the filter.
// Returns io.EOF when no more matching events are available.
func (r *Reader) NextMatching(f Filter) (event.Event, error) {
	for {
		ev, err := r.Next()
		if err != nil {
			return event.Event{}, err
		}
		if f.Matches(ev) {
			return ev, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll reads every event in the log that satisfies the filter.
func ReadAll(path string, f Filter) ([]event.Event, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []event.Event
	for {
		ev, err := r.NextMatching(f)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}
