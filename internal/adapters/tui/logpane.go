package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vito/midterm"
	"go.trai.ch/uifirst/internal/core/domain"
)

// LogPane is a scrollable terminal buffer holding one line per frame that
// changed anything.
type LogPane struct {
	vt     *midterm.Terminal
	offset int
	height int
	buf    bytes.Buffer
}

// NewLogPane creates an empty pane.
func NewLogPane() *LogPane {
	return &LogPane{
		vt:     midterm.NewAutoResizingTerminal(),
		height: 1,
	}
}

// Write appends terminal output. A pane scrolled to the bottom stays there.
func (l *LogPane) Write(p []byte) (int, error) {
	follow := l.offset >= l.maxOffset()
	n, err := l.vt.Write(p)
	if follow {
		l.offset = l.maxOffset()
	}
	return n, err
}

// Resize sets the visible area.
func (l *LogPane) Resize(width, height int) {
	follow := l.offset >= l.maxOffset()
	l.height = max(height, 1)
	l.vt.ResizeX(max(width, 1))
	if follow {
		l.offset = l.maxOffset()
	}
	l.clamp()
}

// Scroll moves the view by delta lines.
func (l *LogPane) Scroll(delta int) {
	l.offset += delta
	l.clamp()
}

// Lines returns the number of lines written so far.
func (l *LogPane) Lines() int {
	return l.vt.UsedHeight()
}

// View renders the visible lines.
func (l *LogPane) View() string {
	l.buf.Reset()
	for i := range l.height {
		row := l.offset + i
		if row >= l.vt.UsedHeight() {
			break
		}
		if i > 0 {
			_ = l.buf.WriteByte('\n')
		}
		_ = l.vt.RenderLine(&l.buf, row)
	}
	return l.buf.String()
}

func (l *LogPane) clamp() {
	l.offset = min(max(l.offset, 0), l.maxOffset())
}

func (l *LogPane) maxOffset() int {
	return max(l.vt.UsedHeight()-l.height, 0)
}

// decisionLine summarizes what a frame decided, or returns "" when nothing
// happened.
func decisionLine(rep domain.FrameReport) string {
	var parts []string
	for _, d := range []struct {
		label string
		ids   []domain.NodeID
	}{
		{"posted", rep.Posted},
		{"purged", rep.Purged},
		{"demoted", rep.Demoted},
		{"completed", rep.Completed},
		{"skipped", rep.Skipped},
		{"discarded", rep.Discarded},
		{"evicted", rep.Evicted},
	} {
		if len(d.ids) == 0 {
			continue
		}
		ids := make([]string, len(d.ids))
		for i, id := range d.ids {
			ids[i] = fmt.Sprint(id)
		}
		parts = append(parts, d.label+" "+strings.Join(ids, ","))
	}
	if rep.IdleReleased {
		parts = append(parts, "idle released")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("frame %d  %s", rep.Frame, strings.Join(parts, "  "))
}
