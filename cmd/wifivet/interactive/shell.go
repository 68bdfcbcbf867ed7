// Package interactive provides the interactive capture browser for the
// wifivet shell command.
package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/wifivet/wifivet/cmd/wifivet/commands"
	"github.com/wifivet/wifivet/pkg/checks"
	"github.com/wifivet/wifivet/pkg/event"
	"github.com/wifivet/wifivet/pkg/eventlog"
)

// Shell holds one browsing session: the loaded event sequence and the
// readline instance driving it.
type Shell struct {
	src commands.Source
	rl  *readline.Instance

	path   string
	events []event.Event
}

// New creates a new interactive shell.
func New(src commands.Source) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "wifivet> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{src: src, rl: rl}, nil
}

// Load loads a capture or event log into the session.
func (s *Shell) Load(ctx context.Context, path string) error {
	events, err := s.src.LoadEvents(ctx, path)
	if err != nil {
		return err
	}

	s.path = path
	s.events = events
	fmt.Fprintf(s.rl.Stdout(), "Loaded %d events from %s\n", len(events), path)
	return nil
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "load", "l":
			s.cmdLoad(ctx, args)

		case "events", "e":
			s.cmdEvents(args)

		case "show":
			s.cmdShow(args)

		case "check", "c":
			s.cmdCheck(args)

		case "save":
			s.cmdSave(args)

		case "stats":
			s.cmdStats()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
wifivet Shell Commands:
  load <path>            - Load a capture or .wvlog event log
  events [kind]          - List loaded events (optionally one kind)
  show <no>              - Show one event in full detail
  check <mode> [ssid]    - Run the psk/sae/eap rule set over loaded events
  save <file.wvlog>      - Save loaded events to an event log
  stats                  - Show statistics for loaded events
  help                   - Show this help
  exit                   - Leave the shell`)
}

// loaded reports whether a capture is loaded, printing a hint when not.
func (s *Shell) loaded() bool {
	if s.path == "" {
		fmt.Fprintln(s.rl.Stdout(), "No capture loaded (use 'load <path>')")
		return false
	}
	return true
}

func (s *Shell) cmdLoad(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: load <path>")
		return
	}

	if err := s.Load(ctx, args[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
	}
}

func (s *Shell) cmdEvents(args []string) {
	if !s.loaded() {
		return
	}

	var filter eventlog.Filter
	if len(args) >= 1 {
		k, err := event.ParseFrameKind(args[0])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
			return
		}
		filter.Kind = &k
	}

	shown := 0
	for _, ev := range s.events {
		if !filter.Matches(ev) {
			continue
		}
		fmt.Fprintf(s.rl.Stdout(), "#%-6s %14.6f  %-10s %s -> %s",
			ev.SequenceNo, ev.Timestamp, ev.Kind, ev.SourceMAC, ev.DestMAC)
		if ev.SSID != "" {
			fmt.Fprintf(s.rl.Stdout(), "  ssid=%s", ev.SSID)
		}
		fmt.Fprintln(s.rl.Stdout())
		shown++
	}

	fmt.Fprintf(s.rl.Stdout(), "%d of %d events\n", shown, len(s.events))
}

func (s *Shell) cmdShow(args []string) {
	if !s.loaded() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: show <no>")
		return
	}

	no := strings.TrimPrefix(args[0], "#")
	for _, ev := range s.events {
		if ev.SequenceNo == no {
			commands.FormatEvent(s.rl.Stdout(), ev)
			return
		}
	}

	fmt.Fprintf(s.rl.Stdout(), "No event #%s\n", no)
}

func (s *Shell) cmdCheck(args []string) {
	if !s.loaded() {
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: check <psk|sae|eap> [ssid]")
		return
	}

	mode, err := checks.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	var exp checks.Expected
	if len(args) >= 2 {
		exp.SSID = args[1]
	}

	verdicts := checks.Run(mode, s.events, exp)
	for _, v := range verdicts {
		fmt.Fprintf(s.rl.Stdout(), "[%s] %s\n", v.Severity, v.Message)
	}
	fmt.Fprintf(s.rl.Stdout(), "Result: %s\n", checks.Worst(verdicts))
}

func (s *Shell) cmdSave(args []string) {
	if !s.loaded() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: save <file.wvlog>")
		return
	}

	w, err := eventlog.NewWriter(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if err := w.WriteAll(s.events); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		w.Close()
		return
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Saved %d events to %s\n", len(s.events), args[0])
}

func (s *Shell) cmdStats() {
	if !s.loaded() {
		return
	}

	commands.Collect(s.events).Print(s.rl.Stdout())
}
