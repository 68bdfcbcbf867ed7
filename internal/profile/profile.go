package profile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wifivet/wifivet/internal/report"
	"github.com/wifivet/wifivet/pkg/checks"
)

// Parse parses a profile from YAML bytes and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if err := p.Validate(); err != nil {
		return nil, &LoadError{
			Message: err.Error(),
			Cause:   err,
		}
	}

	return &p, nil
}

// Load loads a profile from a file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	p, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return p, nil
}

// Validate checks every constrained field. Empty fields are valid; they
// mean "unset, take the default or the flag value".
func (p *Profile) Validate() error {
	if p.Mode != "" {
		if _, err := checks.ParseMode(p.Mode); err != nil {
			return err
		}
	}

	switch p.Capture.Backend {
	case "", "tshark", "native":
	default:
		return fmt.Errorf("invalid capture backend: %s (must be tshark or native)", p.Capture.Backend)
	}

	if p.Capture.Timeout != "" {
		if _, err := time.ParseDuration(p.Capture.Timeout); err != nil {
			return fmt.Errorf("invalid capture timeout: %s", p.Capture.Timeout)
		}
	}

	if p.Report.Format != "" {
		if _, err := report.ParseFormat(p.Report.Format); err != nil {
			return err
		}
	}

	return nil
}

// RunMode returns the profile's mode, or "" when unset.
// Only meaningful after Validate.
func (p *Profile) RunMode() checks.Mode {
	if p.Mode == "" {
		return ""
	}
	m, _ := checks.ParseMode(p.Mode)
	return m
}

// Expected converts the profile's association parameters.
func (p *Profile) Expected() checks.Expected {
	return checks.Expected{
		SSID:     p.SSID,
		Pairwise: p.Pairwise,
		Group:    p.Group,
		AKM:      p.AKM,
	}
}

// CaptureTimeout returns the parsed extraction timeout, 0 when unset.
// Only meaningful after Validate.
func (p *Profile) CaptureTimeout() time.Duration {
	if p.Capture.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(p.Capture.Timeout)
	return d
}
