// Package episode tracks the single in-flight episode of an observation
// session
package episode

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
)

// Active describes the in-flight episode.
type Active struct {
	StartTime time.Time
	Status    models.Status
	// Shown is the number of ticks received since the episode started. It is
	// for display only; committed durations come from wall-clock instants.
	Shown int
}

// Timer is the episode sub-timer of a session. It is either idle or holds
// exactly one active episode.
type Timer struct {
	active  *Active
	primary models.Status
}

// New returns an idle timer for a session with the given primary status.
func New(primary models.Status) *Timer {
	return &Timer{primary: primary}
}

// Start begins an episode with the given status at now.
//
// The primary status is rejected with ErrDuplicateStatus even while another
// episode is active. Any other status is rejected with ErrEpisodeInProgress
// while an episode is active, whatever that episode's status.
func (t *Timer) Start(status models.Status, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus.Fmt(status)
	}

	if status == t.primary {
		return ErrDuplicateStatus.Fmt(status)
	}

	if t.active != nil {
		return ErrEpisodeInProgress
	}

	t.active = &Active{
		Status:    status,
		StartTime: now,
	}

	return nil
}

// Tick advances the displayed duration of the active episode, if any.
func (t *Timer) Tick() {
	if t.active == nil {
		return
	}

	t.active.Shown++
}

// End commits the active episode, closing it at now. An episode that lasted
// less than half a second is rejected and stays active.
func (t *Timer) End(now time.Time) (models.Episode, error) {
	if t.active == nil {
		return models.Episode{}, ErrNoActiveEpisode
	}

	secs := timeutil.Seconds(now.Sub(t.active.StartTime))
	if secs <= 0 {
		return models.Episode{}, ErrZeroDuration
	}

	ep := models.Episode{
		ID:        uuid.NewString(),
		Status:    t.active.Status,
		StartTime: t.active.StartTime,
		EndTime:   now,
		Duration:  secs,
	}

	t.active = nil

	return ep, nil
}

// Cancel discards the active episode. Its time is left to the primary status.
func (t *Timer) Cancel() error {
	if t.active == nil {
		return ErrNoActiveEpisode
	}

	t.active = nil

	return nil
}

// Active returns a copy of the in-flight episode.
func (t *Timer) Active() (Active, bool) {
	if t.active == nil {
		return Active{}, false
	}

	return *t.active, true
}

// Primary returns the primary status of the owning session.
func (t *Timer) Primary() models.Status {
	return t.primary
}
