package episode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/ontask/internal/episode"
	"github.com/ayoisaiah/ontask/internal/models"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestStartRejectsPrimaryStatus(t *testing.T) {
	for _, primary := range models.Statuses {
		timer := episode.New(primary)

		err := timer.Start(primary, t0)
		assert.ErrorIs(t, err, episode.ErrDuplicateStatus)

		_, ok := timer.Active()
		assert.False(t, ok)
	}
}

func TestStartRejectsSecondEpisode(t *testing.T) {
	timer := episode.New(models.OnTask)

	require.NoError(t, timer.Start(models.OffTask, t0))

	err := timer.Start(models.Transitioning, t0.Add(time.Second))
	assert.ErrorIs(t, err, episode.ErrEpisodeInProgress)

	active, ok := timer.Active()
	require.True(t, ok)
	assert.Equal(t, models.OffTask, active.Status)
	assert.Equal(t, t0, active.StartTime)
}

func TestStartErrorPrecedenceWhileActive(t *testing.T) {
	timer := episode.New(models.OnTask)

	require.NoError(t, timer.Start(models.OffTask, t0))

	err := timer.Start(models.OnTask, t0.Add(time.Second))
	assert.ErrorIs(t, err, episode.ErrDuplicateStatus)
	assert.NotErrorIs(t, err, episode.ErrEpisodeInProgress)

	err = timer.Start(models.OffTask, t0.Add(time.Second))
	assert.ErrorIs(t, err, episode.ErrEpisodeInProgress)
}

func TestStartRejectsUnknownStatus(t *testing.T) {
	timer := episode.New(models.OnTask)

	assert.ErrorIs(t, timer.Start("", t0), episode.ErrInvalidStatus)
	assert.ErrorIs(t, timer.Start("sleeping", t0), episode.ErrInvalidStatus)
}

func TestEndCommitsEpisode(t *testing.T) {
	timer := episode.New(models.OnTask)

	require.NoError(t, timer.Start(models.Transitioning, t0))

	timer.Tick()
	timer.Tick()

	active, _ := timer.Active()
	assert.Equal(t, 2, active.Shown)

	ep, err := timer.End(t0.Add(42*time.Second + 300*time.Millisecond))
	require.NoError(t, err)

	assert.NotEmpty(t, ep.ID)
	assert.Equal(t, models.Transitioning, ep.Status)
	assert.Equal(t, t0, ep.StartTime)
	assert.Equal(t, 42, ep.Duration)

	_, ok := timer.Active()
	assert.False(t, ok)
}

func TestEndRejectsZeroDuration(t *testing.T) {
	timer := episode.New(models.OnTask)

	require.NoError(t, timer.Start(models.OffTask, t0))

	_, err := timer.End(t0.Add(400 * time.Millisecond))
	assert.ErrorIs(t, err, episode.ErrZeroDuration)

	active, ok := timer.Active()
	require.True(t, ok, "episode must remain active after a rejected end")
	assert.Equal(t, models.OffTask, active.Status)
}

func TestEndAndCancelRequireActive(t *testing.T) {
	timer := episode.New(models.OnTask)

	_, err := timer.End(t0)
	assert.ErrorIs(t, err, episode.ErrNoActiveEpisode)
	assert.ErrorIs(t, timer.Cancel(), episode.ErrNoActiveEpisode)

	timer.Tick() // no-op without an episode
}

func TestCancelDiscards(t *testing.T) {
	timer := episode.New(models.OffTask)

	require.NoError(t, timer.Start(models.OnTask, t0))
	require.NoError(t, timer.Cancel())

	_, ok := timer.Active()
	assert.False(t, ok)

	require.NoError(t, timer.Start(models.Transitioning, t0))
}
