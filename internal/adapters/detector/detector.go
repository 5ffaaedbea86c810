// Package detector picks how replay output is presented.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how frame reports are presented.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI.
	ModeTUI
	// ModeLinear forces plain text, one block per frame.
	ModeLinear
	// ModeJSON writes one JSON report per frame.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode for out.
// A terminal outside CI gets the TUI.
func DetectEnvironment(out *os.File) OutputMode {
	isTTY := out != nil && term.IsTerminal(int(out.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --output flag to the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
