package domain

import (
	"runtime"
	"time"
)

// Config holds the tunables of the scheduler.
type Config struct {
	Enabled     bool
	CardEnabled bool
	Mode        Mode

	// WindowsThreshold caps concurrent non-focus windows. Zero or less
	// disables the cap.
	WindowsThreshold int
	// ClearCacheThreshold is the reuse count that marks a surface for
	// eviction. Zero or less disables eviction.
	ClearCacheThreshold  int
	SizeChangedThreshold float64

	PurgeEnabled        bool
	BehindWindowEnabled bool
	BehindWindowGrace   time.Duration
	FrameRateControl    bool
	OptSchedule         bool
	StartingWindowCache bool
	AdaptiveGamut       bool

	Workers           int
	HighPriorityHints []string
}

// Default values for Config.
const (
	DefaultSizeChangedThreshold = 0.05
	DefaultBehindWindowGrace    = 100 * time.Millisecond
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		CardEnabled:          true,
		Mode:                 ModeSingle,
		SizeChangedThreshold: DefaultSizeChangedThreshold,
		PurgeEnabled:         true,
		BehindWindowGrace:    DefaultBehindWindowGrace,
		OptSchedule:          true,
		StartingWindowCache:  true,
		Workers:              runtime.NumCPU(),
		HighPriorityHints:    []string{"hipreview"},
	}
}
