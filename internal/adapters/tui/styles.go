package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/uifirst/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	headerStyle = lipgloss.NewStyle().
			Foreground(style.Mist)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			MarginTop(1)
)

func statusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(style.StatusColor(status))
}
