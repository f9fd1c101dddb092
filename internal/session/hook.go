package session

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/ontask/internal/models"
)

// Event names an operation that changed the session.
type Event string

const (
	EventStart         Event = "start"
	EventPause         Event = "pause"
	EventResume        Event = "resume"
	EventEnd           Event = "end"
	EventReset         Event = "reset"
	EventCancel        Event = "cancel"
	EventEpisodeStart  Event = "episode_start"
	EventEpisodeEnd    Event = "episode_end"
	EventEpisodeCancel Event = "episode_cancel"
	EventContext       Event = "context"
)

// Transition describes a successful operation on the session.
type Transition struct {
	At      time.Time
	Event   Event
	Status  models.Status // episode status for episode events
	From    Phase
	To      Phase
	Elapsed int
}

// Hook observes transitions. It runs after the machine is unlocked, so it
// may read the machine, but nothing in the machine depends on it.
type Hook func(Transition)

// LogHook returns a hook that records every transition at debug level.
func LogHook(logger *slog.Logger) Hook {
	return func(tr Transition) {
		attrs := []any{
			slog.String("event", string(tr.Event)),
			slog.String("from", tr.From.String()),
			slog.String("to", tr.To.String()),
			slog.Int("elapsed", tr.Elapsed),
		}

		if tr.Status != "" {
			attrs = append(attrs, slog.String("status", string(tr.Status)))
		}

		logger.Debug("session transition", attrs...)
	}
}
