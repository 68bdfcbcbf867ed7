// Package eventlog persists normalized capture events in CBOR format.
//
// Event logs decouple analysis from extraction: a capture is dissected once,
// the resulting events are written to a .wvlog file, and later runs (viewing,
// filtering, re-checking against different expectations) read the log without
// tshark or the capture file being present.
//
// # Basic Usage
//
//	w, _ := eventlog.NewWriter("session.wvlog")
//	for _, ev := range events {
//	    w.Write(ev)
//	}
//	w.Close()
//
//	r, _ := eventlog.NewReader("session.wvlog")
//	defer r.Close()
//	for {
//	    ev, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// # File Format
//
// Log files use CBOR encoding with .wvlog extension, one event per item,
// integer map keys. The wifivet CLI provides viewing, filtering, and export
// capabilities on top of this package.
package eventlog
