package config

// File represents the structure of the uifirst.yaml configuration file.
// Pointer fields distinguish an explicit false or zero from an omitted key.
type File struct {
	Enabled              *bool           `yaml:"enabled"`
	CardEnabled          *bool           `yaml:"cardEnabled"`
	Mode                 string          `yaml:"mode"`
	WindowsThreshold     int             `yaml:"windowsThreshold"`
	ClearCacheThreshold  int             `yaml:"clearCacheThreshold"`
	SizeChangedThreshold *float64        `yaml:"sizeChangedThreshold"`
	PurgeEnabled         *bool           `yaml:"purgeEnabled"`
	BehindWindow         BehindWindowDTO `yaml:"behindWindow"`
	FrameRateControl     bool            `yaml:"frameRateControl"`
	OptSchedule          *bool           `yaml:"optSchedule"`
	StartingWindowCache  *bool           `yaml:"startingWindowCache"`
	AdaptiveGamut        bool            `yaml:"adaptiveGamut"`
	Workers              int             `yaml:"workers"`
	HighPriorityHints    []string        `yaml:"highPriorityHints"`
}

// BehindWindowDTO configures the behind-window purge.
type BehindWindowDTO struct {
	Enabled bool   `yaml:"enabled"`
	Grace   string `yaml:"grace"`
}
