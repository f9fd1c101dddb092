package app

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
	"github.com/ayoisaiah/ontask/internal/ui"
	"github.com/ayoisaiah/ontask/stats"
)

// printSummary prints the per-student report for the given observations.
func printSummary(
	w io.Writer,
	observations []*models.Observation,
	tolerance int,
) error {
	if len(observations) == 0 {
		pterm.Info.Println(noObservationsMsg)
		return nil
	}

	summaries := stats.Summarize(observations, tolerance)

	tableBody := [][]string{
		{"STUDENT", "OBSERVATIONS", "TIME", "ON-TASK", "OFF-TASK", "TRANSITIONING"},
	}

	bars := make([]pterm.Bar, 0, len(summaries))

	for _, s := range summaries {
		count := fmt.Sprintf("%d", s.Observations)
		if s.Drifting > 0 {
			count += ui.Red(fmt.Sprintf(" (%d drifting)", s.Drifting))
		}

		tableBody = append(tableBody, []string{
			s.Student,
			count,
			timeutil.Human(s.TotalTime),
			fmt.Sprintf("%d%%", s.OnTask),
			fmt.Sprintf("%d%%", s.OffTask),
			fmt.Sprintf("%d%%", s.Transitioning),
		})

		bars = append(bars, pterm.Bar{
			Label: s.Student,
			Value: s.OnTask,
			Style: pterm.NewStyle(pterm.FgGreen),
		})
	}

	ui.PrintTable(tableBody, w)

	chart, err := pterm.DefaultBarChart.
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, pterm.Bold.Sprint("On-task share (%)"))
	fmt.Fprintln(w, chart)

	printPromptSummary(w, stats.SummarizePrompts(observations))

	return nil
}

func printPromptSummary(w io.Writer, prompts []stats.PromptSummary) {
	if len(prompts) == 0 {
		return
	}

	tableBody := [][]string{
		{"PROMPT", "TOTAL", "EFFECTIVE", "PARTIAL", "INEFFECTIVE", "SUCCESS"},
	}

	for _, p := range prompts {
		tableBody = append(tableBody, []string{
			p.Type,
			fmt.Sprintf("%d", p.Total),
			fmt.Sprintf("%d", p.Effective),
			fmt.Sprintf("%d", p.Partial),
			fmt.Sprintf("%d", p.Ineffective),
			fmt.Sprintf("%d%%", p.SuccessRate),
		})
	}

	ui.PrintTable(tableBody, w)
}

// summaryReport is the JSON form of the report command.
type summaryReport struct {
	Students []stats.StudentSummary `json:"students"`
	Prompts  []stats.PromptSummary  `json:"prompts"`
}

func newSummaryReport(
	observations []*models.Observation,
	tolerance int,
) summaryReport {
	return summaryReport{
		Students: stats.Summarize(observations, tolerance),
		Prompts:  stats.SummarizePrompts(observations),
	}
}
