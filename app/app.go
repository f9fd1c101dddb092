package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ontask/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the ontask app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "ontask",
		Usage: `
		OnTask is a classroom behavior observation timer for the command-line.
		It records how long a student spends on task, off task and
		transitioning, and summarises the observations per student.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved observations, newest first",
				Flags:   append(filterFlags(), jsonFlag),
				Action:  listAction,
			},
			{
				Name:      "show",
				Usage:     "Show the episodes and status breakdown of an observation",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{jsonFlag},
				Action:    showAction,
			},
			{
				Name:      "edit",
				Usage:     "Edit the details of a saved observation",
				ArgsUsage: "<id>",
				Flags:     editFlags(),
				Action:    editAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete saved observations by id or by filter",
				ArgsUsage: "[<id>...]",
				Flags:     filterFlags(),
				Action:    deleteAction,
			},
			{
				Name:   "report",
				Usage:  "Summarise observations per student",
				Flags:  append(filterFlags(), jsonFlag),
				Action: reportAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			observerFlag,
			studentFlag,
			statusFlag,
			behaviorFlag,
			disableNotificationFlag,
			wakeLockCmdFlag,
			logLevelFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
