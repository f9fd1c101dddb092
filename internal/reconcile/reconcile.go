// Package reconcile turns the episodes committed during a session into a
// duration-exact, time-ordered record
package reconcile

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/ontask/internal/apperr"
	"github.com/ayoisaiah/ontask/internal/models"
)

var ErrInvariantViolation = &apperr.Error{
	Message: "reconciliation invariant violated: episodes sum to %ds, session lasted %ds",
}

// Reconcile distributes elapsed seconds across the committed episodes and
// the primary status. Episodes are given in commit order and are not
// modified. end is the instant the session ended.
//
// Committed time beyond elapsed is trimmed from the most recently committed
// episodes first. Time not claimed by any episode becomes a single primary
// episode that starts at end - elapsed.
func Reconcile(
	elapsed int,
	primary models.Status,
	committed []models.Episode,
	end time.Time,
) (models.Record, error) {
	if elapsed < 0 {
		return models.Record{}, ErrInvariantViolation.Fmt(0, elapsed)
	}

	episodes := make([]models.Episode, 0, len(committed)+1)

	for _, ep := range committed {
		if ep.Duration > 0 {
			episodes = append(episodes, ep)
		}
	}

	episodes = trim(episodes, total(episodes)-elapsed)

	if gap := elapsed - total(episodes); gap > 0 {
		start := end.Add(-time.Duration(elapsed) * time.Second)

		episodes = append(episodes, models.Episode{
			ID:        uuid.NewString(),
			Status:    primary,
			StartTime: start,
			EndTime:   start.Add(time.Duration(gap) * time.Second),
			Duration:  gap,
		})
	}

	slices.SortStableFunc(episodes, func(a, b models.Episode) int {
		return a.StartTime.Compare(b.StartTime)
	})

	if sum := total(episodes); sum != elapsed {
		return models.Record{}, ErrInvariantViolation.Fmt(sum, elapsed)
	}

	return models.Record{
		Status:   primary,
		Duration: elapsed,
		Episodes: episodes,
	}, nil
}

// trim removes overflow seconds walking backwards from the last episode.
// Episodes that end up empty are dropped.
func trim(episodes []models.Episode, overflow int) []models.Episode {
	if overflow <= 0 {
		return episodes
	}

	for i := len(episodes) - 1; i >= 0 && overflow > 0; i-- {
		cut := min(overflow, episodes[i].Duration)

		episodes[i].Duration -= cut
		episodes[i].EndTime = episodes[i].StartTime.Add(
			time.Duration(episodes[i].Duration) * time.Second,
		)

		overflow -= cut
	}

	return slices.DeleteFunc(episodes, func(ep models.Episode) bool {
		return ep.Duration == 0
	})
}

func total(episodes []models.Episode) int {
	var sum int

	for i := range episodes {
		sum += episodes[i].Duration
	}

	return sum
}
