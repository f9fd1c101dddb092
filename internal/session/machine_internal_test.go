package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/ontask/internal/clock"
	"github.com/ayoisaiah/ontask/internal/models"
)

func TestStaleTickIsDiscarded(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	m := New(WithClock(fc))

	require.NoError(t, m.Start(Params{
		Observer: "A",
		Student:  "B",
		Status:   models.OffTask,
	}))

	stale := m.gen

	require.NoError(t, m.Pause())
	require.NoError(t, m.Resume())

	// a tick scheduled before the pause but delivered after the resume
	m.onTick(stale)
	assert.Zero(t, m.Snapshot().Elapsed)

	m.onTick(m.gen)
	assert.Equal(t, 1, m.Snapshot().Elapsed)

	require.NoError(t, m.Pause())

	m.onTick(m.gen)
	assert.Equal(t, 1, m.Snapshot().Elapsed)
}

func TestStaleEpisodeTickIsDiscarded(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	m := New(WithClock(fc))

	require.NoError(t, m.Start(Params{
		Observer: "A",
		Student:  "B",
		Status:   models.OnTask,
	}))
	require.NoError(t, m.StartEpisode(models.OffTask))

	stale := m.episodeGen

	require.NoError(t, m.CancelEpisode())
	require.NoError(t, m.StartEpisode(models.Transitioning))

	m.onEpisodeTick(stale)

	snap := m.Snapshot()
	require.NotNil(t, snap.Active)
	assert.Zero(t, snap.Active.Shown)
}
