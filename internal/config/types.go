package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the effective calcbench configuration.
	Config struct {
		Engine EngineConfig `json:"engine" mapstructure:"engine"`
		Report ReportConfig `json:"report" mapstructure:"report"`
		Warmup WarmupConfig `json:"warmup" mapstructure:"warmup"`
		UI     UIConfig     `json:"ui" mapstructure:"ui"`
	}

	// EngineConfig controls dispatch limits.
	EngineConfig struct {
		MaxBatch int `json:"max_batch" mapstructure:"max_batch"`
	}

	// ReportConfig controls result printout.
	ReportConfig struct {
		Threshold int `json:"threshold" mapstructure:"threshold"`
	}

	// WarmupConfig controls timing stabilisation before the first line.
	WarmupConfig struct {
		Enabled  bool          `json:"enabled" mapstructure:"enabled"`
		Duration time.Duration `json:"duration" mapstructure:"duration"`
		PinCPU   int           `json:"pin_cpu" mapstructure:"pin_cpu"`
	}

	// UIConfig controls the interactive loop.
	UIConfig struct {
		Prompt  string `json:"prompt" mapstructure:"prompt"`
		Verbose bool   `json:"verbose" mapstructure:"verbose"`
		Color   bool   `json:"color" mapstructure:"color"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{MaxBatch: 1_000_000},
		Report: ReportConfig{Threshold: 15},
		Warmup: WarmupConfig{
			Enabled:  true,
			Duration: 1200 * time.Millisecond,
			PinCPU:   1,
		},
		UI: UIConfig{
			Prompt: "Enter calculation: ",
			Color:  true,
		},
	}
}

// Validate checks constraints that hold regardless of where values came
// from (environment overrides bypass the CUE schema).
func (c *Config) Validate() error {
	if c.Engine.MaxBatch < 1 {
		return fmt.Errorf("%w: engine.max_batch must be at least 1, got %d", ErrInvalidConfig, c.Engine.MaxBatch)
	}
	if c.Report.Threshold < 1 {
		return fmt.Errorf("%w: report.threshold must be at least 1, got %d", ErrInvalidConfig, c.Report.Threshold)
	}
	if c.Warmup.Duration < 0 {
		return fmt.Errorf("%w: warmup.duration must not be negative, got %s", ErrInvalidConfig, c.Warmup.Duration)
	}
	if c.Warmup.PinCPU < -1 {
		return fmt.Errorf("%w: warmup.pin_cpu must be -1 or a CPU index, got %d", ErrInvalidConfig, c.Warmup.PinCPU)
	}
	return nil
}
