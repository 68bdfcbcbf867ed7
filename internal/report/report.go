// Package report renders completed validation runs.
//
// A Run bundles everything one analysis produced: identifying metadata,
// the normalized events, and the verdicts. Renderers turn a Run into the
// requested output document. Text is meant for terminals, JSON and JUnit
// for automation, and HTML for a standalone page worth archiving.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wifivet/wifivet/pkg/checks"
	"github.com/wifivet/wifivet/pkg/event"
)

// Run is one completed validation run.
type Run struct {
	// ID uniquely identifies the run across reports.
	ID string

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time

	// Title is an optional human-supplied heading.
	Title string

	// CapturePath is the analyzed capture or event log.
	CapturePath string

	// Mode is the rule set that was applied.
	Mode checks.Mode

	// Expected holds the parameters the capture was validated against.
	Expected checks.Expected

	// Events is the normalized, time-ordered event sequence.
	Events []event.Event

	// Verdicts is the rule set's output, in rule order.
	Verdicts []checks.Verdict
}

// NewRun stamps a run with a fresh ID and generation time.
func NewRun(capturePath string, mode checks.Mode, exp checks.Expected, events []event.Event, verdicts []checks.Verdict) *Run {
	return &Run{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		CapturePath: capturePath,
		Mode:        mode,
		Expected:    exp,
		Events:      events,
		Verdicts:    verdicts,
	}
}

// Summary holds aggregate verdict counts for a run.
type Summary struct {
	Total  int
	Passed int
	Warned int
	Failed int

	// Worst is the highest severity present (PASS for an empty run).
	Worst checks.Severity
}

// Summary aggregates the run's verdicts.
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.Verdicts), Worst: checks.Worst(r.Verdicts)}
	for _, v := range r.Verdicts {
		switch v.Severity {
		case checks.SeverityPass:
			s.Passed++
		case checks.SeverityWarn:
			s.Warned++
		case checks.SeverityFail:
			s.Failed++
		}
	}
	return s
}

// ExitCode maps the run outcome to a process exit code: 1 when any
// verdict failed, 0 otherwise (warnings do not fail a run).
func (r *Run) ExitCode() int {
	if r.Summary().Failed > 0 {
		return 1
	}
	return 0
}

// Format selects a report renderer.
type Format string

const (
	// FormatText is the human-readable terminal report.
	FormatText Format = "text"
	// FormatJSON is a machine-readable JSON document.
	FormatJSON Format = "json"
	// FormatJUnit is JUnit XML for CI integration.
	FormatJUnit Format = "junit"
	// FormatHTML is the standalone report page.
	FormatHTML Format = "html"
)

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "junit":
		return FormatJUnit, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid report format: %s (must be text, json, junit, or html)", s)
	}
}

// Renderer renders a run into an output document.
type Renderer interface {
	Render(w io.Writer, run *Run) error
}

// NewRenderer returns the renderer for a format.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return &TextRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{Pretty: true}, nil
	case FormatJUnit:
		return &JUnitRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("invalid report format: %s", f)
	}
}
