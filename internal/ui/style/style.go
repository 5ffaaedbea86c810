// Package style provides the shared colors and icons of the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Mist   = lipgloss.Color("#98A2B3")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#06AED4")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// StatusColor maps a cache process status name to its display color.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Done":
		return Green
	case "Doing":
		return Cyan
	case "Waiting":
		return Yellow
	case "Skipped":
		return Iris
	default:
		return Slate
	}
}

// StatusIcon maps a cache process status name to its glyph.
func StatusIcon(status string) string {
	switch status {
	case "Done":
		return Check
	case "Doing":
		return Dot
	case "Waiting":
		return Circle
	case "Skipped":
		return Tilde
	default:
		return " "
	}
}
