// Package config loads and watches the scheduler configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "uifirst.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Info("no " + path + " found, using defaults")
		return domain.DefaultConfig(), nil
	}
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	return Parse(data)
}

// Parse decodes a configuration document and validates it.
func Parse(data []byte) (domain.Config, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return file.toDomain()
}

func (f *File) toDomain() (domain.Config, error) {
	cfg := domain.DefaultConfig()
	var errs []error

	setBool(&cfg.Enabled, f.Enabled)
	setBool(&cfg.CardEnabled, f.CardEnabled)
	setBool(&cfg.PurgeEnabled, f.PurgeEnabled)
	setBool(&cfg.OptSchedule, f.OptSchedule)
	setBool(&cfg.StartingWindowCache, f.StartingWindowCache)
	cfg.FrameRateControl = f.FrameRateControl
	cfg.AdaptiveGamut = f.AdaptiveGamut
	cfg.WindowsThreshold = f.WindowsThreshold
	cfg.ClearCacheThreshold = f.ClearCacheThreshold
	cfg.BehindWindowEnabled = f.BehindWindow.Enabled

	switch mode := domain.Mode(f.Mode); mode {
	case "":
	case domain.ModeSingle, domain.ModeMulti, domain.ModeHybrid:
		cfg.Mode = mode
	default:
		errs = append(errs, invalid("mode", f.Mode))
	}

	if f.SizeChangedThreshold != nil {
		if v := *f.SizeChangedThreshold; v < 0 || v > 1 {
			errs = append(errs, invalid("sizeChangedThreshold", v))
		} else {
			cfg.SizeChangedThreshold = v
		}
	}

	if f.BehindWindow.Grace != "" {
		grace, err := time.ParseDuration(f.BehindWindow.Grace)
		if err != nil || grace < 0 {
			errs = append(errs, invalid("behindWindow.grace", f.BehindWindow.Grace))
		} else {
			cfg.BehindWindowGrace = grace
		}
	}

	switch {
	case f.Workers < 0:
		errs = append(errs, invalid("workers", f.Workers))
	case f.Workers > 0:
		cfg.Workers = f.Workers
	}

	if f.HighPriorityHints != nil {
		cfg.HighPriorityHints = f.HighPriorityHints
	}

	if len(errs) > 0 {
		return domain.Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func invalid(key string, value any) error {
	return zerr.With(zerr.With(domain.ErrConfigInvalid, "key", key), "value", value)
}
