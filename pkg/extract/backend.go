// Package extract turns packet capture files into rows of dissector fields.
//
// Two interchangeable backends produce the same row shape: TSharkBackend
// shells out to the tshark dissector, NativeBackend dissects pcap and pcapng
// files in process. Downstream normalization cannot tell them apart.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/wifivet/wifivet/pkg/event"
)

// Backend extracts dissector field rows from a capture file.
type Backend interface {
	// Extract dissects the capture at path into rows, one per frame of
	// interest, preserving capture order.
	Extract(ctx context.Context, path string) ([]event.Row, error)

	// Name identifies the backend in logs and errors.
	Name() string
}

// ResolveNewest expands a glob pattern and returns the newest matching
// capture, where newest means last in sorted order (capture file names
// carry sortable timestamps).
func ResolveNewest(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad capture pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no capture matches %q", pattern)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
