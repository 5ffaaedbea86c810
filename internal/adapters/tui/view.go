package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/ui/style"
)

const rowFormat = "%-24s %-18s %-8s %-6s %s"

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	title := "UIFIRST"
	if m.Frames > 0 {
		title = fmt.Sprintf("UIFIRST frame %d %s %s", m.Report.Frame, style.Dot, m.Report.Mode)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if m.ShowLog {
		b.WriteString(m.log().View() + "\n")
		return lipgloss.JoinVertical(lipgloss.Left, b.String(), footerStyle.Render(m.footer()))
	}
	b.WriteString(headerStyle.Render("  "+fmt.Sprintf(rowFormat, "NODE", "CACHE", "STATUS", "PRIO", "REUSE")) + "\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Report.Nodes))
	start := min(m.ListOffset, end)
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i, m.Report.Nodes[i]) + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), footerStyle.Render(m.footer()))
}

func (m *Model) renderRow(index int, n domain.NodeReport) string {
	status := string(n.Status)
	icon := statusStyle(status).Render(style.StatusIcon(status))

	name := fmt.Sprintf("%s#%d", n.Name, n.ID)
	row := fmt.Sprintf(rowFormat, name, n.CacheType, status, n.Priority, fmt.Sprint(n.ReuseCount))

	if index == m.SelectedIdx {
		return selectedStyle.Render(">") + icon + " " + selectedStyle.Render(row)
	}
	return " " + icon + " " + statusStyle(status).Render(row)
}

func (m *Model) footer() string {
	t := m.Totals
	mode := "manual"
	switch {
	case m.ShowLog:
		mode = "log"
	case m.FollowMode:
		mode = "following"
	}
	return fmt.Sprintf("frames %d  posted %d  purged %d  completed %d  skipped %d  demoted %d  evicted %d  (%s)",
		m.Frames, t.Posted, t.Purged, t.Completed, t.Skipped, t.Demoted, t.Evicted, mode)
}
