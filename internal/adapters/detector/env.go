// Package detector provides environment detection for log output selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogMode represents the log rendering mode for the server.
type LogMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto LogMode = iota
	// ModePretty forces human-readable colored output.
	ModePretty
	// ModeJSON forces line-delimited JSON records.
	ModeJSON
)

// DetectEnvironment returns the recommended log mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() LogMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveMode(autoDetected LogMode, userFlag string) LogMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "json":
		return ModeJSON
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
