package config

import (
	"sync"
	"time"
)

// DefaultDebounceWindow coalesces the burst of events an editor produces
// when it saves a file.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer runs its callback once a window has passed without another
// Trigger.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	window   time.Duration
	callback func()
}

// NewDebouncer creates a debouncer that calls callback after window.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger restarts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback()
	}
}

// Stop cancels a pending callback. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
