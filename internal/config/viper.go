package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyObserverName   = "observer.name"
	keyDriftTolerance = "settings.drift_tolerance"
	keyRecentStudents = "settings.recent_students"
	keyNotify         = "settings.notify"
	keyWakeLockCmd    = "settings.wake_lock_cmd"
	keyDarkTheme      = "display.dark_theme"
	keyTwentyFourHour = "display.24hr_clock"
	keyLogLevel       = "log.level"
	keyLogMaxSize     = "log.max_size"
	keyLogMaxBackups  = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the file
// at configPath, writing the defaults there first if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setDefaults registers default values. Values already present in c (from
// the first-run prompt) take their place.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyObserverName, "")
	v.SetDefault(keyDriftTolerance, 2)
	v.SetDefault(keyRecentStudents, 5)
	v.SetDefault(keyNotify, true)
	v.SetDefault(keyWakeLockCmd, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Observer.Name != "" {
		v.SetDefault(keyObserverName, c.Observer.Name)
	}

	if c.Settings.WakeLockCmd != "" {
		v.SetDefault(keyWakeLockCmd, c.Settings.WakeLockCmd)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
