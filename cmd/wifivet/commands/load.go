// Package commands implements the wifivet CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
	"github.com/wifivet/wifivet/pkg/extract"
)

// LogExt is the event log file extension. Paths ending in it bypass
// extraction and are read back through pkg/eventlog.
const LogExt = ".wvlog"

// Source selects where events come from and how captures are extracted.
type Source struct {
	// Backend is the extraction backend: "tshark" (default) or "native".
	Backend string

	// TSharkPath overrides the tshark executable location.
	TSharkPath string

	// Timeout bounds one extraction run. Zero means no deadline.
	Timeout time.Duration
}

// backend resolves the configured extraction backend.
func (s Source) backend() (extract.Backend, error) {
	switch s.Backend {
	case "", "tshark":
		return &extract.TSharkBackend{Path: s.TSharkPath, Timeout: s.Timeout}, nil
	case "native":
		return &extract.NativeBackend{}, nil
	default:
		return nil, fmt.Errorf("invalid capture backend: %s (must be tshark or native)", s.Backend)
	}
}

// LoadEvents loads normalized events from path. Event logs are read
// directly; anything else is treated as a capture file and goes through
// the extraction backend and the normalizer.
func (s Source) LoadEvents(ctx context.Context, path string) ([]event.Event, error) {
	if strings.EqualFold(filepath.Ext(path), LogExt) {
		events, err := eventlog.ReadAll(path, eventlog.Filter{})
		if err != nil {
			return nil, fmt.Errorf("failed to read event log: %w", err)
		}
		slog.Debug("loaded event log", "path", path, "events", len(events))
		return events, nil
	}

	backend, err := s.backend()
	if err != nil {
		return nil, err
	}

	rows, err := backend.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	events := event.Normalize(rows)
	slog.Debug("extracted capture",
		"path", path, "backend", backend.Name(), "rows", len(rows), "events", len(events))
	return events, nil
}
