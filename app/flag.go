package app

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ontask/internal/models"
)

func statusNames() string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}

	return strings.Join(names, ", ")
}

var (
	observerFlag = &cli.StringFlag{
		Name:    "observer",
		Aliases: []string{"o"},
		Usage:   "Name of the person recording the observation (overrides the config file)",
	}

	studentFlag = &cli.StringFlag{
		Name:    "student",
		Aliases: []string{"s"},
		Usage:   "Student initials or identifier",
	}

	statusFlag = &cli.StringFlag{
		Name:  "status",
		Usage: fmt.Sprintf("Primary status of the observation (%s)", statusNames()),
	}

	behaviorFlag = &cli.StringFlag{
		Name:    "behavior",
		Aliases: []string{"b"},
		Usage:   "The behavior being observed",
	}

	notesFlag = &cli.StringFlag{
		Name:  "notes",
		Usage: "Free-form notes about the observation",
	}

	whoFlag = &cli.StringSliceFlag{
		Name:  "who",
		Usage: "People present during the observation (repeat the flag for each; pass an empty value to clear)",
	}

	whatFlag = &cli.StringFlag{
		Name:  "what",
		Usage: "The activity taking place",
	}

	whenFlag = &cli.StringFlag{
		Name:  "when",
		Usage: "The part of the day or lesson",
	}

	whereFlag = &cli.StringFlag{
		Name:  "where",
		Usage: "The setting of the observation",
	}

	whyFlag = &cli.StringFlag{
		Name:  "why",
		Usage: "The reason for the observation",
	}

	promptFlag = &cli.StringSliceFlag{
		Name: "prompt",
		Usage: fmt.Sprintf(
			"Replace the logged prompts, one 'Type[=effectiveness]' per flag (effectiveness: %s)",
			strings.Join(models.Effectivenesses, ", "),
		),
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include observations made on or after this date (e.g. 'last monday', '2 weeks ago')",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "Only include observations made before this date",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after an observation is saved",
	}

	wakeLockCmdFlag = &cli.StringFlag{
		Name:  "wake-lock-cmd",
		Usage: "Command that keeps the computer awake while a session is running (e.g. 'caffeinate -i')",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level for the log file (debug, info, warn, error)",
	}
)

func editFlags() []cli.Flag {
	return []cli.Flag{
		behaviorFlag,
		notesFlag,
		observerFlag,
		studentFlag,
		whoFlag,
		whatFlag,
		whenFlag,
		whereFlag,
		whyFlag,
		promptFlag,
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{sinceFlag, untilFlag, studentFlag}
}
