// Package profile provides YAML run profiles for the wifivet CLI.
//
// A profile bundles the expected association parameters and the capture
// and report settings for a validation run, so recurring runs do not need
// a wall of flags. Command-line flags override profile values field by
// field.
package profile

// Profile describes one validation run.
type Profile struct {
	// Mode selects the rule set: psk, sae, or eap.
	Mode string `yaml:"mode"`

	// SSID is the expected network name ("" = no constraint).
	SSID string `yaml:"ssid"`

	// Pairwise and Group are the expected cipher suites.
	Pairwise string `yaml:"pairwise"`
	Group    string `yaml:"group"`

	// AKM is the expected authentication and key management suite.
	AKM string `yaml:"akm"`

	// Capture configures how events are extracted.
	Capture CaptureSettings `yaml:"capture"`

	// Report configures the output document.
	Report ReportSettings `yaml:"report"`
}

// CaptureSettings configures the extraction backend.
type CaptureSettings struct {
	// Backend is the extraction backend: tshark or native.
	Backend string `yaml:"backend"`

	// TSharkPath overrides the tshark executable location.
	TSharkPath string `yaml:"tshark_path"`

	// Timeout bounds one extraction run (e.g., "30s").
	Timeout string `yaml:"timeout"`
}

// ReportSettings configures report rendering.
type ReportSettings struct {
	// Format is the report format: text, json, junit, or html.
	Format string `yaml:"format"`

	// Output is the report destination ("" = stdout).
	Output string `yaml:"output"`

	// Title is an optional report heading.
	Title string `yaml:"title"`
}

// LoadError provides details about a profile loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.File != "" {
		return e.File + ": " + e.Message
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
