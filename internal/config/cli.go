package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Now           time.Time
	Observer      string
	Student       string
	Status        string
	Behavior      string
	Since         string
	Until         string
	WakeLockCmd   string
	LogLevel      string
	DisableNotify bool
	JSON          bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// It must be applied after WithViperConfig so that flags take precedence.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Now:           time.Now(),
			Observer:      ctx.String("observer"),
			Student:       ctx.String("student"),
			Status:        ctx.String("status"),
			Behavior:      ctx.String("behavior"),
			Since:         ctx.String("since"),
			Until:         ctx.String("until"),
			WakeLockCmd:   ctx.String("wake-lock-cmd"),
			LogLevel:      ctx.String("log-level"),
			DisableNotify: ctx.Bool("disable-notification"),
			JSON:          ctx.Bool("json"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if s := strings.TrimSpace(opts.Observer); s != "" {
		c.Observer.Name = s
	}

	c.CLI.Student = strings.TrimSpace(opts.Student)
	c.CLI.Behavior = strings.TrimSpace(opts.Behavior)
	c.CLI.JSON = opts.JSON

	if s := strings.TrimSpace(opts.Status); s != "" {
		status := models.Status(strings.ToLower(s))
		if !status.Valid() {
			return errInvalidStatus.Fmt(s)
		}

		c.CLI.Status = status
	}

	if opts.Since != "" {
		since, err := timeutil.FromStr(opts.Since, opts.Now)
		if err != nil {
			return errInvalidSince.Fmt(opts.Since).Wrap(err)
		}

		c.CLI.Since = since
	}

	if opts.Until != "" {
		until, err := timeutil.FromStr(opts.Until, opts.Now)
		if err != nil {
			return errInvalidUntil.Fmt(opts.Until).Wrap(err)
		}

		c.CLI.Until = until
	}

	if opts.WakeLockCmd != "" {
		c.Settings.WakeLockCmd = opts.WakeLockCmd
	}

	if opts.LogLevel != "" {
		c.Log.Level = strings.ToLower(opts.LogLevel)
	}

	if opts.DisableNotify {
		c.Settings.Notify = false
	}

	return nil
}
