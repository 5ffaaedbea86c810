package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
)

var _ ports.Presenter = (*Presenter)(nil)

// Presenter wraps the Bubble Tea model as a ports.Presenter.
type Presenter struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewPresenter creates a new TUI presenter.
func NewPresenter(model *Model, opts ...tea.ProgramOption) *Presenter {
	return &Presenter{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (p *Presenter) Start(_ context.Context) error {
	go func() {
		_, err := p.program.Run()
		p.errCh <- err
	}()
	return nil
}

// OnFrame forwards a frame report to the TUI.
func (p *Presenter) OnFrame(report domain.FrameReport) {
	p.program.Send(MsgFrame{Report: report})
}

// Stop signals the TUI to quit.
func (p *Presenter) Stop() error {
	p.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (p *Presenter) Wait() error {
	return <-p.errCh
}
