package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ontask/internal/config"
	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/testutil"
)

type TestCase struct {
	Want       *config.Config
	Name       string
	GoldenFile string
	Snapshot   []byte `json:"-"`
}

func (t TestCase) Output() (out []byte, name string) {
	return t.Snapshot, t.GoldenFile
}

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Settings: config.SettingsConfig{
			DriftTolerance: 2,
			RecentStudents: 5,
			Notify:         true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Log: config.LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	tc := TestCase{
		Name:       "write default config to file",
		GoldenFile: "defaults",
		Want:       defaultConfig(),
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	tc.Snapshot, err = os.ReadFile(configPath)
	if err != nil {
		t.Fatal("failed to read config", err)
	}

	testutil.CompareGoldenFile(t, tc)

	assert.Equal(t, tc.Want, cfg)
}

func TestViperReadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	err := testutil.CopyFile("testdata/modified_config.golden", configPath)
	if err != nil {
		t.Fatal(err)
	}

	want := &config.Config{
		Observer: config.ObserverConfig{
			Name: "Ms. Adeyemi",
		},
		Settings: config.SettingsConfig{
			DriftTolerance: 5,
			RecentStudents: 8,
			Notify:         false,
			WakeLockCmd:    "caffeinate -i",
		},
		Display: config.DisplayConfig{
			DarkTheme:      false,
			TwentyFourHour: true,
		},
		Log: config.LogConfig{
			Level:      "debug",
			MaxSize:    5,
			MaxBackups: 1,
		},
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, want, cfg)
}

func TestInvalidConfig(t *testing.T) {
	cases := []struct {
		Name    string
		Content string
		Key     string
	}{
		{
			Name:    "negative drift tolerance",
			Content: "settings:\n    drift_tolerance: -1\n",
			Key:     "settings.drift_tolerance",
		},
		{
			Name:    "too many recent students",
			Content: "settings:\n    recent_students: 500\n",
			Key:     "settings.recent_students",
		},
		{
			Name:    "unknown log level",
			Content: "log:\n    level: verbose\n",
			Key:     "log.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")

			err := os.WriteFile(configPath, []byte(tc.Content), 0o600)
			require.NoError(t, err)

			_, err = config.New(config.WithViperConfig(configPath))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Key)
		})
	}
}

func TestCLIOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.golden", configPath)
	require.NoError(t, err)

	flags := map[string]string{
		"observer":      "Mr. Okafor",
		"student":       " JD ",
		"status":        "Off-Task",
		"behavior":      "Calling out",
		"wake-lock-cmd": "sleep 60",
		"log-level":     "WARN",
	}

	f := flag.NewFlagSet("ontask", flag.ContinueOnError)
	for k, v := range flags {
		_ = f.String(k, "", "")
		require.NoError(t, f.Set(k, v))
	}

	ctx := cli.NewContext(&cli.App{}, f, nil)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, "Mr. Okafor", cfg.Observer.Name)
	assert.Equal(t, "JD", cfg.CLI.Student)
	assert.Equal(t, models.OffTask, cfg.CLI.Status)
	assert.Equal(t, "Calling out", cfg.CLI.Behavior)
	assert.Equal(t, "sleep 60", cfg.Settings.WakeLockCmd)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Settings.DriftTolerance)
}

func TestCLISince(t *testing.T) {
	f := flag.NewFlagSet("list", flag.ContinueOnError)
	_ = f.String("since", "", "")
	require.NoError(t, f.Set("since", "2025-03-01"))

	ctx := cli.NewContext(&cli.App{}, f, nil)

	cfg, err := config.New(
		config.WithViperConfig(filepath.Join(t.TempDir(), "config.yml")),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, 2025, cfg.CLI.Since.Year())
	assert.Equal(t, time.March, cfg.CLI.Since.Month())
	assert.Equal(t, 1, cfg.CLI.Since.Day())
}
