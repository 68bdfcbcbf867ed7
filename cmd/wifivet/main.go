// Command wifivet validates Wi-Fi association and authentication flows
// captured in pcap/pcapng files.
//
// It extracts the association, EAPOL, and EAP frames from a capture,
// normalizes them into a flow event sequence, applies the rule set for the
// selected security mode, and renders a PASS/WARN/FAIL report.
//
// Usage:
//
//	wifivet <command> [flags] <capture|file.wvlog>
//
// Commands:
//
//	check    Validate a capture against an association rule set
//	view     View events in human-readable format
//	export   Export events to JSONL or CSV format
//	filter   Filter an event log and write to a new file
//	stats    Show statistics about a capture or event log
//	shell    Interactive capture browser
//
// Examples:
//
//	# Validate a WPA2-PSK association
//	wifivet check -mode psk -ssid HomeNet -pairwise CCMP home.pcapng
//
//	# Validate the newest capture matching a pattern, write an HTML report
//	wifivet check -mode sae -pcap 'runs/*.pcapng' -format html -o report.html
//
//	# Run with a profile, saving the normalized events
//	wifivet check -profile nightly.yaml -save-events nightly.wvlog
//
//	# View only handshake messages
//	wifivet view -handshake home.pcapng
//
//	# Export to JSONL
//	wifivet export -format jsonl nightly.wvlog
//
//	# Narrow an event log to one station
//	wifivet filter -mac aa:bb:cc:dd:ee:ff -o station.wvlog nightly.wvlog
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wifivet/wifivet/cmd/wifivet/commands"
	"github.com/wifivet/wifivet/cmd/wifivet/interactive"
	"github.com/wifivet/wifivet/internal/logging"
	"github.com/wifivet/wifivet/internal/profile"
	"github.com/wifivet/wifivet/internal/report"
	"github.com/wifivet/wifivet/pkg/checks"
	"github.com/wifivet/wifivet/pkg/extract"
)

const usage = `wifivet - Wi-Fi Association Conformance Analyzer

Usage:
  wifivet <command> [flags] <capture|file.wvlog>

Commands:
  check    Validate a capture against an association rule set
  view     View events in human-readable format
  export   Export events to JSONL or CSV format
  filter   Filter an event log and write to a new file
  stats    Show statistics about a capture or event log
  shell    Interactive capture browser

Use "wifivet <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "check":
		runCheck(args)
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "shell":
		runShell(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// sourceFlags registers the extraction backend flags shared by the
// commands that read captures.
func sourceFlags(fs *flag.FlagSet) (backend, tshark *string, timeout *time.Duration) {
	backend = fs.String("backend", "", "Extraction backend (tshark, native)")
	tshark = fs.String("tshark", "", "tshark executable path")
	timeout = fs.Duration("timeout", 0, "Extraction timeout (e.g. 30s)")
	return
}

// pick returns the flag value when set, the profile value otherwise.
func pick(flagVal, profileVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return profileVal
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet check - Validate a capture against an association rule set

Usage:
  wifivet check [flags] <capture|file.wvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	pcap := fs.String("pcap", "", "Capture file glob; the newest match is analyzed")
	mode := fs.String("mode", "", "Rule set to apply (psk, sae, eap)")
	ssid := fs.String("ssid", "", "Expected SSID")
	pairwise := fs.String("pairwise", "", "Expected pairwise cipher")
	group := fs.String("group", "", "Expected group cipher")
	akm := fs.String("akm", "", "Expected AKM suite")
	profilePath := fs.String("profile", "", "YAML run profile")
	backend, tshark, timeout := sourceFlags(fs)
	format := fs.String("format", "", "Report format (text, json, junit, html)")
	output := fs.String("o", "", "Report file (default: stdout)")
	saveEvents := fs.String("save-events", "", "Write normalized events to this .wvlog file")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	prof := &profile.Profile{}
	if *profilePath != "" {
		p, err := profile.Load(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		prof = p
	}

	modeStr := pick(*mode, prof.Mode)
	if modeStr == "" {
		fmt.Fprintln(os.Stderr, "Error: mode required (-mode or profile)")
		fs.Usage()
		os.Exit(1)
	}
	m, err := checks.ParseMode(modeStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	formatStr := pick(*format, prof.Report.Format)
	if formatStr == "" {
		formatStr = "text"
	}
	f, err := report.ParseFormat(formatStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exp := prof.Expected()
	if *ssid != "" {
		exp.SSID = *ssid
	}
	if *pairwise != "" {
		exp.Pairwise = *pairwise
	}
	if *group != "" {
		exp.Group = *group
	}
	if *akm != "" {
		exp.AKM = *akm
	}

	timeoutVal := *timeout
	if timeoutVal == 0 {
		timeoutVal = prof.CaptureTimeout()
	}

	opts := commands.CheckOptions{
		Source: commands.Source{
			Backend:    pick(*backend, prof.Capture.Backend),
			TSharkPath: pick(*tshark, prof.Capture.TSharkPath),
			Timeout:    timeoutVal,
		},
		Mode:       m,
		Expected:   exp,
		Format:     f,
		Output:     pick(*output, prof.Report.Output),
		Title:      prof.Report.Title,
		SaveEvents: *saveEvents,
	}

	path, err := resolveInput(fs, *pcap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	run, err := commands.RunCheck(context.Background(), path, opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run.ExitCode())
}

// resolveInput picks the input path: positional argument first, then the
// -pcap glob (newest match).
func resolveInput(fs *flag.FlagSet, pattern string) (string, error) {
	if fs.NArg() >= 1 {
		return fs.Arg(0), nil
	}
	if pattern != "" {
		return extract.ResolveNewest(pattern)
	}
	return "", fmt.Errorf("capture path required (positional or -pcap)")
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet view - View events in human-readable format

Usage:
  wifivet view [flags] <capture|file.wvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	kind := fs.String("kind", "", "Filter by frame kind (e.g. AUTH, ASSOC_REQ, 4WH-2)")
	mac := fs.String("mac", "", "Filter by MAC address (matches sa, da, or bssid)")
	handshake := fs.Bool("handshake", false, "Show only 4-way handshake messages")
	backend, tshark, timeout := sourceFlags(fs)
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture or event log path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(commands.FilterOptions{
		Kind:      *kind,
		MAC:       *mac,
		Handshake: *handshake,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src := commands.Source{Backend: *backend, TSharkPath: *tshark, Timeout: *timeout}
	if err := commands.RunView(context.Background(), fs.Arg(0), src, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet export - Export events to JSONL or CSV format

Usage:
  wifivet export [flags] <capture|file.wvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	kind := fs.String("kind", "", "Filter by frame kind")
	mac := fs.String("mac", "", "Filter by MAC address (matches sa, da, or bssid)")
	handshake := fs.Bool("handshake", false, "Export only 4-way handshake messages")
	backend, tshark, timeout := sourceFlags(fs)
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture or event log path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(commands.FilterOptions{
		Kind:      *kind,
		MAC:       *mac,
		Handshake: *handshake,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src := commands.Source{Backend: *backend, TSharkPath: *tshark, Timeout: *timeout}
	if err := commands.RunExport(context.Background(), fs.Arg(0), src, filter, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet filter - Filter an event log and write to a new file

Usage:
  wifivet filter [flags] <file.wvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output event log (required)")
	kind := fs.String("kind", "", "Filter by frame kind")
	mac := fs.String("mac", "", "Filter by MAC address (matches sa, da, or bssid)")
	ssid := fs.String("ssid", "", "Filter by SSID")
	timeStart := fs.String("time-start", "", "Filter by start time (epoch seconds)")
	timeEnd := fs.String("time-end", "", "Filter by end time (epoch seconds)")
	handshake := fs.Bool("handshake", false, "Keep only 4-way handshake messages")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: event log path required")
		fs.Usage()
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		Kind:      *kind,
		MAC:       *mac,
		SSID:      *ssid,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Handshake: *handshake,
	}

	if err := commands.RunFilter(fs.Arg(0), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet stats - Show statistics about a capture or event log

Usage:
  wifivet stats [flags] <capture|file.wvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	backend, tshark, timeout := sourceFlags(fs)
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture or event log path required")
		fs.Usage()
		os.Exit(1)
	}

	src := commands.Source{Backend: *backend, TSharkPath: *tshark, Timeout: *timeout}
	if err := commands.RunStats(context.Background(), fs.Arg(0), src, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `wifivet shell - Interactive capture browser

Usage:
  wifivet shell [flags] [capture|file.wvlog]

Flags:
`)
		fs.PrintDefaults()
	}

	backend, tshark, timeout := sourceFlags(fs)
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logging.Setup(*verbose)

	src := commands.Source{Backend: *backend, TSharkPath: *tshark, Timeout: *timeout}
	sh, err := interactive.New(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if fs.NArg() >= 1 {
		if err := sh.Load(ctx, fs.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	sh.Run(ctx)
}
