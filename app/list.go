package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
	"github.com/ayoisaiah/ontask/internal/ui"
	"github.com/ayoisaiah/ontask/report"
	"github.com/ayoisaiah/ontask/stats"
)

const (
	noObservationsMsg = "No observations found for the specified filters"

	dateLayout12 = "Jan 02, 2006 03:04 PM"
	dateLayout24 = "Jan 02, 2006 15:04"
)

func dateLayout(twentyFourHour bool) string {
	if twentyFourHour {
		return dateLayout24
	}

	return dateLayout12
}

// tableOpts controls how observations are rendered.
type tableOpts struct {
	layout    string
	tolerance int
}

// printObservationsTable prints an observation table to the command-line.
func printObservationsTable(
	w io.Writer,
	observations []*models.Observation,
	opts tableOpts,
) {
	tableBody := make([][]string, len(observations))

	for i, obs := range observations {
		s := stats.Compute(obs.Record(), opts.tolerance)

		onTask := fmt.Sprintf("%d%%", s.OnTask)
		if s.Drift {
			onTask += " " + ui.Red("!")
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			report.Short(obs.ID),
			obs.Timestamp.Format(opts.layout),
			obs.Student,
			ui.Status(obs.Status),
			timeutil.Clock(obs.Duration),
			onTask,
		}
	}

	tableBody = append([][]string{
		{"#", "ID", "DATE", "STUDENT", "PRIMARY", "DURATION", "ON-TASK"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// listObservations prints out a table of observations.
func listObservations(
	w io.Writer,
	observations []*models.Observation,
	opts tableOpts,
) {
	if len(observations) == 0 {
		pterm.Info.Println(noObservationsMsg)
		return
	}

	printObservationsTable(w, observations, opts)
}
