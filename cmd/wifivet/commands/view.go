package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
)

// RunView executes the view command: a human-readable event listing.
func RunView(ctx context.Context, path string, src Source, filter eventlog.Filter, w io.Writer) error {
	events, err := src.LoadEvents(ctx, path)
	if err != nil {
		return err
	}

	shown := 0
	for _, ev := range events {
		if !filter.Matches(ev) {
			continue
		}
		FormatEvent(w, ev)
		shown++
	}

	fmt.Fprintf(w, "%d of %d events\n", shown, len(events))
	return nil
}

// FormatEvent writes a human-readable representation of the event to w.
func FormatEvent(w io.Writer, ev event.Event) {
	// Header line: #no timestamp KIND sa -> da
	fmt.Fprintf(w, "#%-6s %14.6f  %-10s %s -> %s\n",
		ev.SequenceNo, ev.Timestamp, ev.Kind, orDash(ev.SourceMAC), orDash(ev.DestMAC))

	if ev.BSSID != "" {
		fmt.Fprintf(w, "  BSSID: %s", ev.BSSID)
		if dir := ev.Direction(); dir != event.DirectionUnknown {
			fmt.Fprintf(w, " (%s)", dir)
		}
		fmt.Fprintln(w)
	}
	if ev.SSID != "" {
		fmt.Fprintf(w, "  SSID: %s\n", ev.SSID)
	}
	if ev.AKM != "" || ev.PairwiseCipher != "" || ev.GroupCipher != "" {
		fmt.Fprintf(w, "  RSN: akm=%s pairwise=%s group=%s\n",
			orDash(ev.AKM), orDash(ev.PairwiseCipher), orDash(ev.GroupCipher))
	}
	if ev.PMFRequired != event.TristateAbsent || ev.PMFCapable != event.TristateAbsent {
		fmt.Fprintf(w, "  PMF: required=%s capable=%s\n", ev.PMFRequired, ev.PMFCapable)
	}
	if ev.Kind.IsHandshake() || ev.Kind == event.KindEAPOLKey {
		fmt.Fprintf(w, "  EAPOL: key_info=%s replay=%s mic=%s\n",
			orDash(ev.KeyInfoRaw), orDash(ev.ReplayCounter), presence(ev.MIC))
	}
	if ev.Kind == event.KindEAP {
		fmt.Fprintf(w, "  EAP: code=%s type=%s success=%s\n",
			orDash(ev.EAPCode), orDash(ev.EAPType), orDash(ev.EAPSuccess))
	}

	fmt.Fprintln(w)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func presence(s string) string {
	if s == "" {
		return "absent"
	}
	return "present"
}
