package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html.tmpl").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/report.html.tmpl"),
)

// HTMLRenderer writes the standalone report page.
type HTMLRenderer struct{}

// htmlContext is the template's data: the run plus precomputed display
// strings so the template stays free of logic.
type htmlContext struct {
	Title    string
	Capture  string
	Mode     string
	SSID     string
	When     string
	RunID    string
	Result   string
	Verdicts []htmlVerdict
	Events   []htmlEvent
}

type htmlVerdict struct {
	Level   string
	Message string
}

type htmlEvent struct {
	No    string
	Time  string
	Kind  string
	SA    string
	DA    string
	BSSID string
	SSID  string
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, run *Run) error {
	title := run.Title
	if title == "" {
		title = "Wi-Fi Conformance Report"
	}

	ctx := htmlContext{
		Title:   title,
		Capture: run.CapturePath,
		Mode:    strings.ToUpper(string(run.Mode)),
		SSID:    run.Expected.SSID,
		When:    run.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
		RunID:   run.ID,
		Result:  run.Summary().Worst.String(),
	}
	for _, v := range run.Verdicts {
		ctx.Verdicts = append(ctx.Verdicts, htmlVerdict{
			Level:   v.Severity.String(),
			Message: v.Message,
		})
	}
	for _, e := range run.Events {
		ctx.Events = append(ctx.Events, htmlEvent{
			No:    e.SequenceNo,
			Time:  fmt.Sprintf("%.6f", e.Timestamp),
			Kind:  e.Kind.String(),
			SA:    e.SourceMAC,
			DA:    e.DestMAC,
			BSSID: e.BSSID,
			SSID:  e.SSID,
		})
	}

	if err := reportTemplate.Execute(w, ctx); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}
