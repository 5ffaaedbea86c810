package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/uifirst/internal/core/domain"
)

// chromeHeight is the number of lines around the node list: title, blank,
// column header, footer margin, footer.
const chromeHeight = 5

// MsgFrame carries one frame report into the model.
type MsgFrame struct {
	Report domain.FrameReport
}

// Totals accumulates the per-frame decisions of a run.
type Totals struct {
	Posted    int
	Purged    int
	Demoted   int
	Completed int
	Skipped   int
	Evicted   int
}

// Model represents the main TUI state.
type Model struct {
	Report      domain.FrameReport
	Frames      int
	Totals      Totals
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int
	FollowMode  bool
	// ShowLog swaps the node list for the decision log.
	ShowLog bool
	Log     *LogPane
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) log() *LogPane {
	if m.Log == nil {
		m.Log = NewLogPane()
		m.Log.Resize(m.Width, m.ListHeight)
	}
	return m.Log
}

// follow selects the first node a worker is drawing.
func (m *Model) follow() {
	for i, n := range m.Report.Nodes {
		if n.Status == domain.StatusDoing {
			m.SelectedIdx = i
			break
		}
	}
	m.ensureVisible()
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message kind
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.ShowLog = !m.ShowLog
		case "pgup":
			m.log().Scroll(-m.ListHeight)
		case "pgdown":
			m.log().Scroll(m.ListHeight)
		case "k", "up":
			if m.ShowLog {
				m.log().Scroll(-1)
				break
			}
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
				m.ensureVisible()
			}
		case "j", "down":
			if m.ShowLog {
				m.log().Scroll(1)
				break
			}
			if m.SelectedIdx < len(m.Report.Nodes)-1 {
				m.SelectedIdx++
				m.FollowMode = false
				m.ensureVisible()
			}
		case "esc":
			m.FollowMode = true
			m.follow()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.ListHeight = max(msg.Height-chromeHeight, 1)
		m.log().Resize(m.Width, m.ListHeight)
		m.ensureVisible()

	case MsgFrame:
		rep := msg.Report
		m.Report = rep
		m.Frames++
		m.Totals.Posted += len(rep.Posted)
		m.Totals.Purged += len(rep.Purged)
		m.Totals.Demoted += len(rep.Demoted)
		m.Totals.Completed += len(rep.Completed)
		m.Totals.Skipped += len(rep.Skipped)
		m.Totals.Evicted += len(rep.Evicted)
		if line := decisionLine(rep); line != "" {
			_, _ = m.log().Write([]byte(line + "\r\n"))
		}

		if m.SelectedIdx >= len(rep.Nodes) {
			m.SelectedIdx = max(len(rep.Nodes)-1, 0)
		}
		if m.FollowMode {
			m.follow()
		}
		m.ensureVisible()
	}

	return m, nil
}
