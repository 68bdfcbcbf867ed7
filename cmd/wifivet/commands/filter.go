package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
)

// FilterOptions specifies criteria for the filter command.
// String fields are raw flag values, parsed by BuildFilter.
type FilterOptions struct {
	Output    string
	Kind      string
	MAC       string
	SSID      string
	TimeStart string
	TimeEnd   string
	Handshake bool
}

// BuildFilter parses the options into event log filter criteria.
func BuildFilter(opts FilterOptions) (eventlog.Filter, error) {
	var filter eventlog.Filter

	if opts.Kind != "" {
		k, err := event.ParseFrameKind(opts.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &k
	}
	if opts.MAC != "" {
		mac := strings.ToLower(opts.MAC)
		filter.MAC = &mac
	}
	if opts.SSID != "" {
		ssid := opts.SSID
		filter.SSID = &ssid
	}
	if opts.TimeStart != "" {
		t, err := strconv.ParseFloat(opts.TimeStart, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start: %s (epoch seconds expected)", opts.TimeStart)
		}
		filter.MinTime = &t
	}
	if opts.TimeEnd != "" {
		t, err := strconv.ParseFloat(opts.TimeEnd, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end: %s (epoch seconds expected)", opts.TimeEnd)
		}
		filter.MaxTime = &t
	}
	filter.HandshakeOnly = opts.Handshake

	return filter, nil
}

// RunFilter filters an event log and writes matching events to a new log.
func RunFilter(path string, opts FilterOptions, stdout io.Writer) error {
	if !strings.EqualFold(filepath.Ext(path), LogExt) {
		return fmt.Errorf("filter reads event logs (%s); run check with -save-events first", LogExt)
	}

	filter, err := BuildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := eventlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer reader.Close()

	writer, err := eventlog.NewWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output log: %w", err)
	}
	defer writer.Close()

	count := 0
	for {
		ev, err := reader.NextMatching(filter)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := writer.Write(ev); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
		count++
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize output log: %w", err)
	}

	fmt.Fprintf(stdout, "Filtered %d events to %s\n", count, opts.Output)
	return nil
}
