package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wifivet/wifivet/internal/report"
	"github.com/wifivet/wifivet/pkg/checks"
	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
)

// CheckOptions configures a validation run.
type CheckOptions struct {
	// Source selects the extraction backend for capture inputs.
	Source Source

	// Mode is the rule set to apply.
	Mode checks.Mode

	// Expected holds the association parameters to validate against.
	Expected checks.Expected

	// Format selects the report renderer.
	Format report.Format

	// Output is the report destination ("" = stdout).
	Output string

	// Title is an optional report heading.
	Title string

	// SaveEvents writes the normalized events to this event log ("" = off).
	SaveEvents string
}

// RunCheck executes the check command: load events, apply the rule set,
// render the report. The returned run carries the exit code mapping.
func RunCheck(ctx context.Context, path string, opts CheckOptions, stdout io.Writer) (*report.Run, error) {
	events, err := opts.Source.LoadEvents(ctx, path)
	if err != nil {
		return nil, err
	}

	if opts.SaveEvents != "" {
		if err := saveEvents(opts.SaveEvents, events); err != nil {
			return nil, err
		}
		slog.Debug("saved event log", "path", opts.SaveEvents, "events", len(events))
	}

	verdicts := checks.Run(opts.Mode, events, opts.Expected)
	run := report.NewRun(path, opts.Mode, opts.Expected, events, verdicts)
	run.Title = opts.Title

	renderer, err := report.NewRenderer(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.Output == "" {
		if err := renderer.Render(stdout, run); err != nil {
			return nil, err
		}
		return run, nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	if err := renderer.Render(f, run); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	fmt.Fprintf(stdout, "report generated -> %s\n", opts.Output)
	return run, nil
}

func saveEvents(path string, events []event.Event) error {
	w, err := eventlog.NewWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create event log: %w", err)
	}
	if err := w.WriteAll(events); err != nil {
		w.Close()
		return fmt.Errorf("failed to write event log: %w", err)
	}
	return w.Close()
}
