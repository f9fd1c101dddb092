package store

import (
	"context"
	"log/slog"

	"github.com/ayoisaiah/ontask/internal/models"
)

// Sink saves finalized observations from a running session and remembers
// the observed student for the start form.
type Sink struct {
	db          DB
	recentLimit int
}

// NewSink returns a Sink that keeps up to recentLimit recent students.
func NewSink(db DB, recentLimit int) *Sink {
	return &Sink{
		db:          db,
		recentLimit: recentLimit,
	}
}

func (s *Sink) Save(ctx context.Context, obs *models.Observation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.db.SaveObservation(obs); err != nil {
		return err
	}

	// the observation is already saved at this point
	if err := s.db.AddRecentStudent(obs.Student, s.recentLimit); err != nil {
		slog.WarnContext(ctx, "updating recent students failed",
			slog.String("student", obs.Student),
			slog.Any("error", err),
		)
	}

	return nil
}
