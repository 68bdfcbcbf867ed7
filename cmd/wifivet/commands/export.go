package commands

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
)

// exportEvent mirrors event.Event with JSON field names for export.
type exportEvent struct {
	No            string  `json:"no"`
	Time          float64 `json:"time"`
	Kind          string  `json:"kind"`
	SA            string  `json:"sa,omitempty"`
	DA            string  `json:"da,omitempty"`
	BSSID         string  `json:"bssid,omitempty"`
	SSID          string  `json:"ssid,omitempty"`
	AKM           string  `json:"akm,omitempty"`
	Pairwise      string  `json:"pairwise,omitempty"`
	Group         string  `json:"group,omitempty"`
	PMFRequired   string  `json:"pmf_required,omitempty"`
	PMFCapable    string  `json:"pmf_capable,omitempty"`
	EAPCode       string  `json:"eap_code,omitempty"`
	EAPType       string  `json:"eap_type,omitempty"`
	EAPSuccess    string  `json:"eap_success,omitempty"`
	KeyInfo       string  `json:"key_info,omitempty"`
	ReplayCounter string  `json:"replay_counter,omitempty"`
	MIC           string  `json:"mic,omitempty"`
}

func toExportEvent(ev event.Event) exportEvent {
	e := exportEvent{
		No:            ev.SequenceNo,
		Time:          ev.Timestamp,
		Kind:          ev.Kind.String(),
		SA:            ev.SourceMAC,
		DA:            ev.DestMAC,
		BSSID:         ev.BSSID,
		SSID:          ev.SSID,
		AKM:           ev.AKM,
		Pairwise:      ev.PairwiseCipher,
		Group:         ev.GroupCipher,
		EAPCode:       ev.EAPCode,
		EAPType:       ev.EAPType,
		EAPSuccess:    ev.EAPSuccess,
		KeyInfo:       ev.KeyInfoRaw,
		ReplayCounter: ev.ReplayCounter,
		MIC:           ev.MIC,
	}
	if ev.PMFRequired != event.TristateAbsent {
		e.PMFRequired = ev.PMFRequired.String()
	}
	if ev.PMFCapable != event.TristateAbsent {
		e.PMFCapable = ev.PMFCapable.String()
	}
	return e
}

// RunExport exports events to the specified format.
func RunExport(ctx context.Context, path string, src Source, filter eventlog.Filter, format, output string) error {
	events, err := src.LoadEvents(ctx, path)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(events, filter, w)
	case "csv":
		return exportCSV(events, filter, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(events []event.Event, filter eventlog.Filter, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for _, ev := range events {
		if !filter.Matches(ev) {
			continue
		}
		if err := encoder.Encode(toExportEvent(ev)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(events []event.Event, filter eventlog.Filter, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"no", "time", "kind", "sa", "da", "bssid", "ssid",
		"akm", "pairwise", "group", "pmf_required", "pmf_capable",
		"eap_code", "eap_type", "eap_success",
		"key_info", "replay_counter", "mic",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ev := range events {
		if !filter.Matches(ev) {
			continue
		}
		e := toExportEvent(ev)
		row := []string{
			e.No,
			strconv.FormatFloat(e.Time, 'f', 6, 64),
			e.Kind, e.SA, e.DA, e.BSSID, e.SSID,
			e.AKM, e.Pairwise, e.Group, e.PMFRequired, e.PMFCapable,
			e.EAPCode, e.EAPType, e.EAPSuccess,
			e.KeyInfo, e.ReplayCounter, e.MIC,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
