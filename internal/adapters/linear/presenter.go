// Package linear provides a synchronous, line-oriented presenter for CI and
// scripted runs.
package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/uifirst/internal/ui/output"
	"go.trai.ch/uifirst/internal/ui/style"
)

var _ ports.Presenter = (*Presenter)(nil)

// Presenter implements ports.Presenter by printing one block per frame.
type Presenter struct {
	w      io.Writer
	output *termenv.Output
	json   bool

	mu     sync.Mutex
	frames int
	totals totals
}

type totals struct {
	posted, purged, completed, skipped, demoted, evicted int
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithJSON prints every report as one JSON document per line.
func WithJSON() Option {
	return func(p *Presenter) { p.json = true }
}

// NewPresenter creates a presenter writing to w. A nil writer selects stdout.
func NewPresenter(w io.Writer, opts ...Option) *Presenter {
	if w == nil {
		w = os.Stdout
	}
	p := &Presenter{
		w:      w,
		output: output.New(w),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start is a no-op for the linear presenter (synchronous).
func (p *Presenter) Start(_ context.Context) error {
	return nil
}

// OnFrame prints report.
func (p *Presenter) OnFrame(report domain.FrameReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames++
	p.totals.posted += len(report.Posted)
	p.totals.purged += len(report.Purged)
	p.totals.completed += len(report.Completed)
	p.totals.skipped += len(report.Skipped)
	p.totals.demoted += len(report.Demoted)
	p.totals.evicted += len(report.Evicted)

	if p.json {
		_ = json.NewEncoder(p.w).Encode(report)
		return
	}

	var b strings.Builder
	header := fmt.Sprintf("frame %d", report.Frame)
	fmt.Fprintf(&b, "%s mode=%s windows=%d deferred=%d\n",
		p.output.String(header).Bold(), report.Mode, report.WindowCount, report.Deferred)

	for _, n := range report.Nodes {
		p.writeNode(&b, n)
	}

	for _, line := range []struct {
		label string
		ids   []domain.NodeID
	}{
		{"posted", report.Posted},
		{"purged", report.Purged},
		{"demoted", report.Demoted},
		{"completed", report.Completed},
		{"skipped", report.Skipped},
		{"discarded", report.Discarded},
		{"evicted", report.Evicted},
		{"force-update", report.ForceUpdate},
	} {
		if len(line.ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %s %s\n", p.faint(style.Arrow), line.label, joinIDs(line.ids))
	}
	if report.IdleReleased {
		fmt.Fprintf(&b, "  %s idle released\n", p.faint(style.Arrow))
	}

	_, _ = io.WriteString(p.w, b.String())
}

func (p *Presenter) writeNode(b *strings.Builder, n domain.NodeReport) {
	status := string(n.Status)
	color := p.output.Color(string(style.StatusColor(status)))
	icon := p.output.String(style.StatusIcon(status)).Foreground(color)

	fmt.Fprintf(b, "  %s %s#%d %s %s", icon, n.Name, n.ID, n.CacheType, status)
	if n.Priority != "" {
		fmt.Fprintf(b, " prio=%s", n.Priority)
	}
	if n.ReuseCount > 0 {
		fmt.Fprintf(b, " reuse=%d", n.ReuseCount)
	}
	if n.Gamut != "" {
		fmt.Fprintf(b, " gamut=%s", n.Gamut)
	}
	b.WriteString("\n")
}

func (p *Presenter) faint(s string) termenv.Style {
	return p.output.String(s).Faint()
}

// Stop prints the run summary.
func (p *Presenter) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return nil
	}
	t := p.totals
	_, err := fmt.Fprintf(p.w,
		"replayed %d frames: posted=%d purged=%d completed=%d skipped=%d demoted=%d evicted=%d\n",
		p.frames, t.posted, t.purged, t.completed, t.skipped, t.demoted, t.evicted)
	return err
}

// Wait is a no-op for the linear presenter (synchronous).
func (p *Presenter) Wait() error {
	return nil
}

func joinIDs(ids []domain.NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
