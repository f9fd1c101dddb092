package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func section(title, body string) string {
	return fmt.Sprintf("%s\n%s\n\n", pterm.Yellow(title), body)
}

func helpText() string {
	description := section("DESCRIPTION", "\t\t{{.Usage}}")

	usage := section(
		"USAGE",
		"\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}",
	)

	version := "{{if .Version}}" + section("VERSION", "\t\t{{.Version}}") + "{{end}}"

	commands := section(
		"COMMANDS",
		fmt.Sprintf(
			"{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
			pterm.Green("{{join .Names `, `}}"),
		),
	)

	options := section(
		"OPTIONS",
		fmt.Sprintf(
			"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
			pterm.Green("-{{$element}}"),
			pterm.Green("--{{.Name}} {{.DefaultText}}"),
		),
	)

	return description + usage + version + commands + options +
		section("EXAMPLES", examplesHelp()) +
		section("ENVIRONMENTAL VARIABLES", envHelp())
}

func examplesHelp() string {
	return `		ontask --student JD --status on-task
		ontask list --since "last monday" --student JD
		ontask show 0190a1b2
		ontask report --since "2 weeks ago"`
}

func envHelp() string {
	return `		ONTASK_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

		ONTASK_ENV: keep a separate config file, database and log for the named environment (e.g. "training").`
}
