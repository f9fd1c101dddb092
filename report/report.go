// Package report prints user-facing outcomes of ontask commands
package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
)

// ShortID is the number of id characters shown to users. Any unique prefix
// is accepted wherever an id is expected.
const ShortID = 8

// Short truncates an observation id for display.
func Short(id string) string {
	if len(id) > ShortID {
		return id[:ShortID]
	}

	return id
}

// ObservationSaved announces a saved observation.
func ObservationSaved(obs *models.Observation) {
	pterm.Success.Printfln(
		"observation %s saved: %s observed for %s",
		Short(obs.ID),
		obs.Student,
		timeutil.Clock(obs.Duration),
	)
}

// Abandoned announces a session that was closed without saving.
func Abandoned() {
	pterm.Info.Println("session abandoned, nothing was saved")
}

// Updated announces an edited observation.
func Updated(obs *models.Observation) {
	pterm.Success.Printfln("observation %s updated", Short(obs.ID))
}

// Deleted announces removed observations.
func Deleted(n int) {
	pterm.Success.Println(fmt.Sprintf("%d observation(s) deleted", n))
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}
