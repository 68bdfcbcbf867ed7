package eventlog

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/wifivet/wifivet/pkg/event"
)

// Sink consumes normalized events.
type Sink interface {
	Write(ev event.Event) error
	Close() error
}

// Writer writes normalized events to a .wvlog file.
// It is safe for concurrent use from multiple goroutines.
type Writer struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewWriter creates a Writer that writes to the specified path.
// An existing file is truncated: an event log captures one extraction run,
// it is not an append-only journal. The file is created with permissions
// 0644 if it doesn't exist.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Write appends one event to the log.
// This method is safe for concurrent use.
func (w *Writer) Write(ev event.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	return w.encoder.Encode(ev)
}

// WriteAll appends the events in order.
func (w *Writer) WriteAll(events []event.Event) error {
	for _, ev := range events {
		if err := w.Write(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the log file.
// It is safe to call Close multiple times.
// After Close is called, subsequent Write calls return os.ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// Compile-time interface satisfaction check.
var _ Sink = (*Writer)(nil)
