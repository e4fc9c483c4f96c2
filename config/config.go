// Package config handles configuration loading and validation for keydeck.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete daemon configuration.
type Config struct {
	Timing  TimingConfig  `toml:"timing"`
	Catalog CatalogConfig `toml:"catalog"`
	Logging LoggingConfig `toml:"logging"`

	// Buttons maps global hotkey combos onto catalog actions.
	Buttons []ButtonConfig `toml:"buttons"`

	// ToggleButton is the dedicated two-state Toggle Key button.
	ToggleButton ToggleButtonConfig `toml:"toggle_button"`
}

type TimingConfig struct {
	// PressDurationMs is how long ExecutePress keeps a binding down.
	PressDurationMs int `toml:"press_duration_ms"`

	// DelayedPressFallbackS replaces the fixed 0.25s delay used by
	// delayed-family modes whose press-trigger threshold is zero.
	DelayedPressFallbackS float64 `toml:"delayed_press_fallback_s"`

	// ToggleHoldThresholdS classifies Toggle Key presses as short or long.
	ToggleHoldThresholdS float64 `toml:"toggle_hold_threshold_s"`
}

type CatalogConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type LoggingConfig struct {
	Path string `toml:"path"`
}

type ButtonConfig struct {
	Combo  string `toml:"combo"`
	Action string `toml:"action"`
}

type ToggleButtonConfig struct {
	Combo  string `toml:"combo"`
	Action string `toml:"action"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			PressDurationMs:       40,
			DelayedPressFallbackS: 0.25,
			ToggleHoldThresholdS:  1.0,
		},
		Catalog: CatalogConfig{Watch: true},
	}
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates. An empty path yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides lets the environment override file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("KEYDECK_CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("KEYDECK_LOG_PATH"); v != "" {
		c.Logging.Path = v
	}
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Timing.PressDurationMs < 0 {
		return fmt.Errorf("timing.press_duration_ms must be >= 0")
	}
	if c.Timing.DelayedPressFallbackS < 0 {
		return fmt.Errorf("timing.delayed_press_fallback_s must be >= 0")
	}
	if c.Timing.ToggleHoldThresholdS <= 0 {
		return fmt.Errorf("timing.toggle_hold_threshold_s must be > 0")
	}
	for i, b := range c.Buttons {
		if b.Combo == "" || b.Action == "" {
			return fmt.Errorf("buttons[%d]: combo and action are required", i)
		}
	}
	if (c.ToggleButton.Combo == "") != (c.ToggleButton.Action == "") {
		return fmt.Errorf("toggle_button: combo and action must be set together")
	}
	return nil
}

func (c *Config) PressDuration() time.Duration {
	return time.Duration(c.Timing.PressDurationMs) * time.Millisecond
}

func (c *Config) DelayedPressFallback() time.Duration {
	return time.Duration(c.Timing.DelayedPressFallbackS * float64(time.Second))
}

func (c *Config) ToggleHoldThreshold() time.Duration {
	return time.Duration(c.Timing.ToggleHoldThresholdS * float64(time.Second))
}
