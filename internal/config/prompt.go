package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/ontask/internal/osutil"
)

const asciiLogo = `
 ██████╗ ███╗   ██╗████████╗ █████╗ ███████╗██╗  ██╗
██╔═══██╗████╗  ██║╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝
██║   ██║██╔██╗ ██║   ██║   ███████║███████╗█████╔╝
██║   ██║██║╚██╗██║   ██║   ██╔══██║╚════██║██╔═██╗
╚██████╔╝██║ ╚████║   ██║   ██║  ██║███████║██║  ██╗
 ╚═════╝ ╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Observer  string
	KeepAwake bool
}

// WithPromptConfig returns an Option that asks for the observer's name and
// sleep prevention preference the first time ontask runs.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts, runtime.GOOS)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{KeepAwake: true}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure ontask for the first time.
Your name is saved with every observation you record.
Edit the config file with 'ontask edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Observer name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a name is required")
					}

					return nil
				}).
				Value(&opts.Observer),
			huh.NewConfirm().
				Title("Keep the computer awake while observing?").
				Value(&opts.KeepAwake),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions, goos string) error {
	c.Observer.Name = strings.TrimSpace(opts.Observer)

	if opts.KeepAwake {
		c.Settings.WakeLockCmd = defaultWakeLockCmd(goos)
	}

	return nil
}

// defaultWakeLockCmd returns a command that inhibits sleep until killed.
func defaultWakeLockCmd(goos string) string {
	switch goos {
	case osutil.Darwin:
		return "caffeinate -i"
	case osutil.Windows:
		return ""
	}

	return `systemd-inhibit --what=idle:sleep --who=ontask --why="Observation in progress" sleep infinity`
}
