package eventlog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wifivet/wifivet/pkg/event"
)

func TestWriterCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("event log file was not created")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	ev := event.Event{
		SequenceNo:     "42",
		Timestamp:      1700000000.25,
		SourceMAC:      "aa:bb:cc:dd:ee:ff",
		DestMAC:        "11:22:33:44:55:66",
		BSSID:          "aa:bb:cc:dd:ee:ff",
		Kind:           event.KindHandshake1,
		SSID:           "CorpNet",
		AKM:            "PSK",
		PairwiseCipher: "CCMP",
		GroupCipher:    "CCMP",
		PMFRequired:    event.TristateFalse,
		PMFCapable:     event.TristateTrue,
		KeyInfoRaw:     "0x008a",
		ReplayCounter:  "1",
	}
	if err := w.Write(ev); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read event log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("event log is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded != ev {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", decoded, ev)
	}
}

func TestWriterTruncatesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w1, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := w1.Write(event.Event{SequenceNo: "old", Kind: event.KindOther}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	w1.Close()

	w2, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w2.Write(event.Event{SequenceNo: "new", Kind: event.KindAuth}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	w2.Close()

	events, err := ReadAll(path, Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after rewrite, got %d", len(events))
	}
	if events[0].SequenceNo != "new" {
		t.Errorf("SequenceNo: got %q, want %q", events[0].SequenceNo, "new")
	}
}

func TestWriterWriteAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	in := []event.Event{
		{SequenceNo: "1", Kind: event.KindAuth},
		{SequenceNo: "2", Kind: event.KindAssocReq},
		{SequenceNo: "3", Kind: event.KindAssocResp},
	}
	if err := w.WriteAll(in); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	w.Close()

	events, err := ReadAll(path, Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != len(in) {
		t.Fatalf("expected %d events, got %d", len(in), len(events))
	}
	for i := range in {
		if events[i] != in[i] {
			t.Errorf("event %d: got %+v, want %+v", i, events[i], in[i])
		}
	}
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := w.Write(event.Event{}); err != os.ErrClosed {
		t.Errorf("Write after Close: got %v, want os.ErrClosed", err)
	}
}

func TestWriterConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.wvlog")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = w.Write(event.Event{Kind: event.KindEAPOLKey})
			}
		}()
	}
	wg.Wait()
	w.Close()

	events, err := ReadAll(path, Filter{})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != writers*perWriter {
		t.Errorf("expected %d events, got %d", writers*perWriter, len(events))
	}
}
