package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wifivet/wifivet/pkg/checks"
	"github.com/wifivet/wifivet/pkg/event"
)

// TextRenderer writes a human-readable terminal report.
type TextRenderer struct{}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, run *Run) error {
	title := run.Title
	if title == "" {
		title = "Wi-Fi Conformance Report"
	}
	fmt.Fprintf(w, "=== %s ===\n", title)
	fmt.Fprintf(w, "Capture: %s\n", run.CapturePath)
	fmt.Fprintf(w, "Mode:    %s\n", strings.ToUpper(string(run.Mode)))
	if run.Expected.SSID != "" {
		fmt.Fprintf(w, "SSID:    %s\n", run.Expected.SSID)
	}
	fmt.Fprintln(w)

	for _, v := range run.Verdicts {
		fmt.Fprintf(w, "[%s] %s\n", v.Severity, v.Message)
	}

	s := run.Summary()
	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Checks: %d\n", s.Total)
	fmt.Fprintf(w, "Passed: %d\n", s.Passed)
	fmt.Fprintf(w, "Warned: %d\n", s.Warned)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Result: %s\n", s.Worst)
	return nil
}

// JSONRenderer writes the run as a JSON document.
type JSONRenderer struct {
	// Pretty indents the output.
	Pretty bool
}

// jsonReport mirrors Run with JSON field names.
type jsonReport struct {
	ID          string        `json:"id"`
	GeneratedAt string        `json:"generated_at"`
	Title       string        `json:"title,omitempty"`
	Capture     string        `json:"capture"`
	Mode        string        `json:"mode"`
	Expected    jsonExpected  `json:"expected"`
	Summary     jsonSummary   `json:"summary"`
	Verdicts    []jsonVerdict `json:"verdicts"`
	Events      []jsonEvent   `json:"events"`
}

type jsonExpected struct {
	SSID     string `json:"ssid,omitempty"`
	Pairwise string `json:"pairwise,omitempty"`
	Group    string `json:"group,omitempty"`
	AKM      string `json:"akm,omitempty"`
}

type jsonSummary struct {
	Total  int    `json:"total"`
	Passed int    `json:"passed"`
	Warned int    `json:"warned"`
	Failed int    `json:"failed"`
	Result string `json:"result"`
}

type jsonVerdict struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type jsonEvent struct {
	No    string  `json:"no"`
	Time  float64 `json:"time"`
	Kind  string  `json:"kind"`
	SA    string  `json:"sa,omitempty"`
	DA    string  `json:"da,omitempty"`
	BSSID string  `json:"bssid,omitempty"`
	SSID  string  `json:"ssid,omitempty"`
}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, run *Run) error {
	s := run.Summary()
	jr := jsonReport{
		ID:          run.ID,
		GeneratedAt: run.GeneratedAt.Format(time.RFC3339),
		Title:       run.Title,
		Capture:     run.CapturePath,
		Mode:        string(run.Mode),
		Expected: jsonExpected{
			SSID:     run.Expected.SSID,
			Pairwise: run.Expected.Pairwise,
			Group:    run.Expected.Group,
			AKM:      run.Expected.AKM,
		},
		Summary: jsonSummary{
			Total:  s.Total,
			Passed: s.Passed,
			Warned: s.Warned,
			Failed: s.Failed,
			Result: s.Worst.String(),
		},
		Verdicts: make([]jsonVerdict, 0, len(run.Verdicts)),
		Events:   make([]jsonEvent, 0, len(run.Events)),
	}
	for _, v := range run.Verdicts {
		jr.Verdicts = append(jr.Verdicts, jsonVerdict{
			Severity: v.Severity.String(),
			Message:  v.Message,
		})
	}
	for _, e := range run.Events {
		jr.Events = append(jr.Events, toJSONEvent(e))
	}

	var data []byte
	var err error
	if r.Pretty {
		data, err = json.MarshalIndent(jr, "", "  ")
	} else {
		data, err = json.Marshal(jr)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func toJSONEvent(e event.Event) jsonEvent {
	return jsonEvent{
		No:    e.SequenceNo,
		Time:  e.Timestamp,
		Kind:  e.Kind.String(),
		SA:    e.SourceMAC,
		DA:    e.DestMAC,
		BSSID: e.BSSID,
		SSID:  e.SSID,
	}
}

// JUnitRenderer writes JUnit XML: one testsuite per run, one testcase per
// verdict. Failed verdicts map to <failure>, warnings to <skipped> so CI
// dashboards keep the distinction.
type JUnitRenderer struct{}

// Render implements Renderer.
func (r *JUnitRenderer) Render(w io.Writer, run *Run) error {
	s := run.Summary()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n")

	fmt.Fprintf(&b, `<testsuite name="%s" tests="%d" failures="%d" skipped="%d">`,
		escapeXML(fmt.Sprintf("wifivet %s %s", run.Mode, run.CapturePath)),
		s.Total, s.Failed, s.Warned)
	b.WriteString("\n")

	class := "wifivet." + string(run.Mode)
	for _, v := range run.Verdicts {
		fmt.Fprintf(&b, `  <testcase name="%s" classname="%s">`,
			escapeXML(v.Message), escapeXML(class))
		b.WriteString("\n")

		switch v.Severity {
		case checks.SeverityFail:
			fmt.Fprintf(&b, `    <failure message="%s"/>`, escapeXML(v.Message))
			b.WriteString("\n")
		case checks.SeverityWarn:
			fmt.Fprintf(&b, `    <skipped message="%s"/>`, escapeXML(v.Message))
			b.WriteString("\n")
		}

		b.WriteString("  </testcase>\n")
	}

	b.WriteString("</testsuite>\n")

	_, err := fmt.Fprint(w, b.String())
	return err
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
