package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
	"github.com/ayoisaiah/ontask/internal/ui"
	"github.com/ayoisaiah/ontask/stats"
)

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}

	return s
}

// showObservation prints the details of a single observation followed by its
// episodes and status breakdown.
func showObservation(w io.Writer, obs *models.Observation, opts tableOpts) {
	s := stats.Compute(obs.Record(), opts.tolerance)

	details := [][]string{
		{"FIELD", "VALUE"},
		{"ID", obs.ID},
		{"Date", obs.Timestamp.Format(opts.layout)},
		{"Observer", obs.Observer},
		{"Student", obs.Student},
		{"Behavior", orDash(obs.Behavior)},
		{"Primary status", ui.Status(obs.Status)},
		{"Duration", timeutil.Human(obs.Duration)},
		{"Who", orDash(strings.Join(obs.Context.Who, ", "))},
		{"What", orDash(obs.Context.What)},
		{"When", orDash(obs.Context.When)},
		{"Where", orDash(obs.Context.Where)},
		{"Why", orDash(obs.Context.Why)},
		{"Notes", orDash(obs.Context.Notes)},
	}

	if !obs.LastModified.IsZero() {
		details = append(details, []string{
			"Last modified", obs.LastModified.Format(opts.layout),
		})
	}

	ui.PrintTable(details, w)

	if len(obs.Episodes) > 0 {
		episodes := [][]string{{"#", "STATUS", "START", "END", "DURATION"}}

		for i, ep := range obs.Episodes {
			end := "-"
			if !ep.EndTime.IsZero() {
				end = ep.EndTime.Format(opts.layout)
			}

			episodes = append(episodes, []string{
				fmt.Sprintf("%d", i+1),
				ui.Status(ep.Status),
				ep.StartTime.Format(opts.layout),
				end,
				timeutil.Clock(ep.Duration),
			})
		}

		ui.PrintTable(episodes, w)
	}

	if len(obs.Context.Prompts) > 0 {
		prompts := [][]string{{"PROMPT", "TIME", "EFFECTIVENESS"}}

		for _, p := range obs.Context.Prompts {
			prompts = append(prompts, []string{
				p.Type,
				p.Timestamp.Format(opts.layout),
				orDash(p.Effectiveness),
			})
		}

		ui.PrintTable(prompts, w)
	}

	breakdown := [][]string{{"STATUS", "SHARE"}}
	for _, status := range models.Statuses {
		breakdown = append(breakdown, []string{
			ui.Status(status),
			fmt.Sprintf("%d%%", s.Percent(status)),
		})
	}

	ui.PrintTable(breakdown, w)

	if s.Drift {
		pterm.Warning.Printfln(
			"episodes add up to %s but the observation lasted %s",
			timeutil.Human(s.TotalTime),
			timeutil.Human(s.Duration),
		)
	}
}
