package app

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/pathutil"
	"github.com/ayoisaiah/ontask/internal/static"
	"github.com/ayoisaiah/ontask/internal/timeutil"
	"github.com/ayoisaiah/ontask/stats"
)

var notifier = beeep.Notify

func notificationText(obs *models.Observation, s stats.Stats) string {
	return fmt.Sprintf(
		"%s: %s observed, %d%% on task",
		obs.Student,
		timeutil.Human(obs.Duration),
		s.OnTask,
	)
}

// notify shows a desktop notification for a saved observation.
// Failures are only logged.
func notify(obs *models.Observation, s stats.Stats) {
	icon := static.Path(pathutil.Dir(), static.Icon)

	err := notifier("Observation saved", notificationText(obs, s), icon)
	if err != nil {
		slog.Error(
			"unable to show notification",
			slog.Any("error", err),
		)
	}
}
