// Package tui provides an interactive terminal view of a replay.
package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/uifirst/internal/ui/output"
)

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) Model {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		FollowMode: true,
		Log:        NewLogPane(),
	}
}
