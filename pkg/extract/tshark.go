package extract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/wifivet/wifivet/pkg/event"
)

// displayFilter selects the association/authentication traffic the checks
// consume: EAPOL and EAP frames, management frames, and the handful of
// subtypes classified downstream.
const displayFilter = "eapol || eap || wlan_mgt || " +
	"wlan.fc.type_subtype==0x0b || wlan.fc.type_subtype==0x00 || " +
	"wlan.fc.type_subtype==0x01 || wlan.fc.type_subtype==0x20"

// DefaultTSharkPath is used when TSharkBackend.Path is empty.
const DefaultTSharkPath = "tshark"

// TSharkBackend extracts rows by running the tshark dissector on the
// capture file.
type TSharkBackend struct {
	// Path is the tshark binary to run. Empty means DefaultTSharkPath.
	Path string

	// Timeout bounds one extraction run. Zero means no deadline beyond
	// the caller's context.
	Timeout time.Duration
}

// Name implements Backend.
func (b *TSharkBackend) Name() string { return "tshark" }

// Extract implements Backend. It requests every field in
// event.AllFields() as tab-separated output and parses one Row per
// printed frame.
func (b *TSharkBackend) Extract(ctx context.Context, path string) ([]event.Row, error) {
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	bin := b.Path
	if bin == "" {
		bin = DefaultTSharkPath
	}

	args := []string{
		"-r", path,
		"-Y", displayFilter,
		"-T", "fields",
		"-E", "header=y",
		"-E", "separator=\t",
		"-E", "quote=d",
		"-E", "occurrence=f",
	}
	for _, f := range event.AllFields() {
		args = append(args, "-e", f)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("'%s' execution failed: %v: %s",
				bin, err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("'%s' execution failed: %v", bin, err)
	}

	return parseTSV(string(out)), nil
}

// parseTSV parses tshark -T fields output: a header row naming the columns,
// then one tab-separated, double-quoted line per frame. Short lines are
// tolerated, the missing columns simply stay absent from the row.
func parseTSV(out string) []event.Row {
	lines := strings.Split(out, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}

	header := splitTSVLine(lines[0])

	var rows []event.Row
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitTSVLine(line)
		row := make(event.Row, len(header))
		for i, name := range header {
			if i < len(values) && values[i] != "" {
				row[name] = values[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func splitTSVLine(line string) []string {
	parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
	for i, p := range parts {
		parts[i] = strings.Trim(p, `"`)
	}
	return parts
}
