// Package config loads ontask settings from the config file and the command
// line
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/ontask/internal/models"
)

type (
	// Config holds all configuration settings
	Config struct {
		Observer ObserverConfig `mapstructure:"observer"`
		Settings SettingsConfig `mapstructure:"settings"`
		Display  DisplayConfig  `mapstructure:"display"`
		Log      LogConfig      `mapstructure:"log"`
		CLI      CLIConfig      `mapstructure:"-"`
	}

	// ObserverConfig identifies the person recording observations
	ObserverConfig struct {
		Name string `mapstructure:"name"`
	}

	// SettingsConfig holds observation-related settings
	SettingsConfig struct {
		WakeLockCmd    string `mapstructure:"wake_lock_cmd"`
		DriftTolerance int    `mapstructure:"drift_tolerance" validate:"gte=0,lte=60"`
		RecentStudents int    `mapstructure:"recent_students" validate:"gte=0,lte=50"`
		Notify         bool   `mapstructure:"notify"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// LogConfig controls the application log file
	LogConfig struct {
		Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
		MaxSize    int    `mapstructure:"max_size"    validate:"gte=1"`
		MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Since    time.Time
		Until    time.Time
		Student  string
		Behavior string
		Status   models.Status
		JSON     bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}
