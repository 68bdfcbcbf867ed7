// Package logging configures the slog logger used for CLI diagnostics.
//
// Output goes to stderr with a colored terminal handler, keeping stdout
// clean for reports and exported data. Library packages stay silent and
// return errors; only the commands log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// level is the process-wide log level, adjustable before or after Setup.
var level = new(slog.LevelVar)

// Setup installs the default logger writing to stderr. With verbose set
// the level drops to debug, otherwise warnings and errors only, so a
// normal run prints nothing but the report.
func Setup(verbose bool) *slog.Logger {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
	logger := New(os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger with the terminal handler writing to w.
func New(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

// SetLevel adjusts the process-wide log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// isTerminal reports whether w is an interactive terminal. Colors are
// disabled for pipes and files.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
