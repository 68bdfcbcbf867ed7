package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/wifivet/wifivet/pkg/event"
)

// Stats holds aggregate statistics about an event sequence.
type Stats struct {
	TotalEvents  int
	EventsByKind map[event.FrameKind]int

	// HandshakeSteps counts occurrences per step, indexed 1..4.
	HandshakeSteps [5]int

	BSSIDs   map[string]int
	Stations map[string]int
	SSIDs    map[string]int

	TimeRange struct {
		Start float64
		End   float64
	}
}

// Collect computes statistics over an event sequence.
func Collect(events []event.Event) *Stats {
	stats := &Stats{
		EventsByKind: make(map[event.FrameKind]int),
		BSSIDs:       make(map[string]int),
		Stations:     make(map[string]int),
		SSIDs:        make(map[string]int),
	}

	const broadcast = "ff:ff:ff:ff:ff:ff"

	for _, ev := range events {
		stats.TotalEvents++
		stats.EventsByKind[ev.Kind]++

		if step := ev.Kind.HandshakeStep(); step > 0 {
			stats.HandshakeSteps[step]++
		}

		if ev.Timestamp > 0 {
			if stats.TimeRange.Start == 0 || ev.Timestamp < stats.TimeRange.Start {
				stats.TimeRange.Start = ev.Timestamp
			}
			if ev.Timestamp > stats.TimeRange.End {
				stats.TimeRange.End = ev.Timestamp
			}
		}

		if ev.BSSID != "" {
			stats.BSSIDs[ev.BSSID]++
		}
		for _, mac := range []string{ev.SourceMAC, ev.DestMAC} {
			if mac == "" || mac == broadcast || mac == ev.BSSID {
				continue
			}
			stats.Stations[mac]++
		}
		if ev.SSID != "" {
			stats.SSIDs[ev.SSID]++
		}
	}

	return stats
}

// MissingHandshakeSteps returns the handshake steps never observed.
func (s *Stats) MissingHandshakeSteps() []int {
	var missing []int
	for step := 1; step <= 4; step++ {
		if s.HandshakeSteps[step] == 0 {
			missing = append(missing, step)
		}
	}
	return missing
}

// RunStats analyzes the input and prints statistics.
func RunStats(ctx context.Context, path string, src Source, w io.Writer) error {
	events, err := src.LoadEvents(ctx, path)
	if err != nil {
		return err
	}

	Collect(events).Print(w)
	return nil
}

// statsKindOrder is the display order for kind counters.
var statsKindOrder = []event.FrameKind{
	event.KindAuth, event.KindAssocReq, event.KindAssocResp,
	event.KindDisassoc, event.KindDeauth,
	event.KindHandshake1, event.KindHandshake2, event.KindHandshake3, event.KindHandshake4,
	event.KindEAPOLKey, event.KindEAP, event.KindOther,
}

// Print writes the statistics in human-readable form.
func (s *Stats) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Capture Statistics ===")
	fmt.Fprintln(w)

	if s.TimeRange.End > 0 {
		fmt.Fprintf(w, "Time Range: %.6f to %.6f\n", s.TimeRange.Start, s.TimeRange.End)
		fmt.Fprintf(w, "Duration:   %.3fs\n", s.TimeRange.End-s.TimeRange.Start)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", s.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range statsKindOrder {
		if count := s.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "4-Way Handshake:")
	seen := 0
	for step := 1; step <= 4; step++ {
		if count := s.HandshakeSteps[step]; count > 0 {
			fmt.Fprintf(w, "  step %d: %d\n", step, count)
			seen++
		}
	}
	switch {
	case seen == 0:
		fmt.Fprintln(w, "  none observed")
	case seen == 4:
		fmt.Fprintln(w, "  all steps observed")
	default:
		fmt.Fprintf(w, "  missing steps: %v\n", s.MissingHandshakeSteps())
	}
	fmt.Fprintln(w)

	printAddressSet(w, "BSSIDs", s.BSSIDs)
	printAddressSet(w, "Stations", s.Stations)
	printAddressSet(w, "SSIDs", s.SSIDs)
}

func printAddressSet(w io.Writer, label string, set map[string]int) {
	fmt.Fprintf(w, "%s: %d\n", label, len(set))

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  %s (%d events)\n", k, set[k])
	}
}
