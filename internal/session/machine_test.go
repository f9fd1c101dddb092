package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/ontask/internal/clock"
	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/session"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type sinkMock struct {
	err   error
	saved []*models.Observation
}

func (s *sinkMock) Save(_ context.Context, obs *models.Observation) error {
	if s.err != nil {
		return s.err
	}

	obs.ID = "obs-1"
	s.saved = append(s.saved, obs)

	return nil
}

type wakeMock struct {
	calls []string
}

func (w *wakeMock) Acquire() { w.calls = append(w.calls, "acquire") }
func (w *wakeMock) Release() { w.calls = append(w.calls, "release") }

// reentrantWake reads the machine from inside the wake lock calls.
type reentrantWake struct {
	m      *session.Machine
	phases []session.Phase
}

func (w *reentrantWake) Acquire() { w.phases = append(w.phases, w.m.Snapshot().Phase) }
func (w *reentrantWake) Release() { w.phases = append(w.phases, w.m.Snapshot().Phase) }

type panickyWake struct{}

func (panickyWake) Acquire() { panic("no inhibitor") }
func (panickyWake) Release() { panic("no inhibitor") }

type fixture struct {
	clock *clock.Fake
	sink  *sinkMock
	wake  *wakeMock
	m     *session.Machine
	trs   []session.Transition
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock: clock.NewFake(t0),
		sink:  &sinkMock{},
		wake:  &wakeMock{},
	}

	f.m = session.New(
		session.WithClock(f.clock),
		session.WithSink(f.sink),
		session.WithWakeLock(f.wake),
		session.WithHook(func(tr session.Transition) {
			f.trs = append(f.trs, tr)
		}),
	)

	return f
}

func validParams() session.Params {
	return session.Params{
		Observer: "Ms. Adeyemi",
		Student:  "JD",
		Status:   models.OnTask,
		Context: models.Context{
			Who:  []string{"Peers"},
			What: "Independent reading",
		},
	}
}

func (f *fixture) start(t *testing.T) {
	t.Helper()

	require.NoError(t, f.m.Start(validParams()))
}

func (f *fixture) advance(secs int) {
	f.clock.Advance(time.Duration(secs) * time.Second)
}

func TestStartValidation(t *testing.T) {
	cases := []struct {
		Name   string
		Mutate func(p *session.Params)
	}{
		{"empty observer", func(p *session.Params) { p.Observer = "" }},
		{"blank observer", func(p *session.Params) { p.Observer = "   " }},
		{"blank student", func(p *session.Params) { p.Student = "\t" }},
		{"missing status", func(p *session.Params) { p.Status = "" }},
		{"unknown status", func(p *session.Params) { p.Status = "asleep" }},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			f := newFixture(t)

			p := validParams()
			tc.Mutate(&p)

			err := f.m.Start(p)
			assert.ErrorIs(t, err, session.ErrValidation)

			assert.Equal(t, session.Idle, f.m.Snapshot().Phase)
			assert.Zero(t, f.clock.Running())
			assert.Empty(t, f.wake.calls)
			assert.Empty(t, f.trs)
		})
	}
}

func TestStartTrimsIdentity(t *testing.T) {
	f := newFixture(t)

	p := validParams()
	p.Student = "  JD "

	require.NoError(t, f.m.Start(p))

	assert.Equal(t, "JD", f.m.Snapshot().Student)
}

func TestStartTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	err := f.m.Start(validParams())
	assert.ErrorIs(t, err, session.ErrInvalidPhase)
}

func TestTicksCountOnlyWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.advance(10)
	assert.Equal(t, 10, f.m.Snapshot().Elapsed)

	require.NoError(t, f.m.Pause())
	f.advance(5)

	snap := f.m.Snapshot()
	assert.Equal(t, session.Paused, snap.Phase)
	assert.Equal(t, 10, snap.Elapsed)

	require.NoError(t, f.m.Resume())
	f.advance(5)
	assert.Equal(t, 15, f.m.Snapshot().Elapsed)

	require.NoError(t, f.m.Toggle())
	assert.Equal(t, session.Paused, f.m.Snapshot().Phase)
	require.NoError(t, f.m.Toggle())
	assert.Equal(t, session.Running, f.m.Snapshot().Phase)
}

func TestPauseResumeOutOfPhase(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.m.Pause(), session.ErrInvalidPhase)
	assert.ErrorIs(t, f.m.Resume(), session.ErrInvalidPhase)

	f.start(t)

	assert.ErrorIs(t, f.m.Resume(), session.ErrInvalidPhase)
}

func TestEpisodeKeepsRunningWhilePaused(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.advance(5)
	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(5)
	require.NoError(t, f.m.Pause())
	f.advance(10)

	snap := f.m.Snapshot()
	require.NotNil(t, snap.Active)
	assert.Equal(t, 15, snap.Active.Shown)
	assert.Equal(t, 10, snap.Elapsed)

	ep, err := f.m.EndEpisode()
	require.NoError(t, err)
	assert.Equal(t, 15, ep.Duration)
	assert.Equal(t, 1, f.m.Snapshot().Committed)
}

func TestEpisodeWithPrimaryStatusRejected(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	err := f.m.StartEpisode(models.OnTask)
	assert.ErrorIs(t, err, session.ErrDuplicateStatus)
	assert.Nil(t, f.m.Snapshot().Active)
}

func TestEpisodeOperationsNeedLiveSession(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.m.StartEpisode(models.OffTask), session.ErrInvalidPhase)
	assert.ErrorIs(t, f.m.CancelEpisode(), session.ErrInvalidPhase)

	_, err := f.m.EndEpisode()
	assert.ErrorIs(t, err, session.ErrInvalidPhase)
}

func TestEndEpisodeImmediatelyIsRejected(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(3)

	require.NoError(t, f.m.StartEpisode(models.OffTask))

	_, err := f.m.EndEpisode()
	assert.ErrorIs(t, err, session.ErrZeroDuration)

	snap := f.m.Snapshot()
	require.NotNil(t, snap.Active, "episode must still be active")
	assert.Equal(t, models.OffTask, snap.Active.Status)
	assert.Zero(t, snap.Committed)
}

func TestEndWithActiveEpisodeIsRejected(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(20)

	require.NoError(t, f.m.StartEpisode(models.Transitioning))
	f.advance(5)

	obs, err := f.m.End(context.Background())
	assert.ErrorIs(t, err, session.ErrEpisodeInProgress)
	assert.Nil(t, obs)

	assert.Equal(t, session.Running, f.m.Snapshot().Phase)
	assert.Empty(t, f.sink.saved)

	f.advance(5)
	assert.Equal(t, 30, f.m.Snapshot().Elapsed)
}

func TestEndWithZeroElapsedIsRejected(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	_, err := f.m.End(context.Background())
	assert.ErrorIs(t, err, session.ErrZeroDuration)
	assert.Equal(t, session.Running, f.m.Snapshot().Phase)
}

func TestFullSession(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.advance(10)
	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(50)
	_, err := f.m.EndEpisode()
	require.NoError(t, err)

	f.advance(40)
	require.NoError(t, f.m.StartEpisode(models.Transitioning))
	f.advance(30)
	_, err = f.m.EndEpisode()
	require.NoError(t, err)

	// a cancelled episode leaves its time to the primary status
	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(20)
	require.NoError(t, f.m.CancelEpisode())

	f.advance(150)

	obs, err := f.m.End(context.Background())
	require.NoError(t, err)
	require.NotNil(t, obs)

	assert.Equal(t, "obs-1", obs.ID)
	assert.Equal(t, 300, obs.Duration)
	assert.Equal(t, models.OnTask, obs.Status)
	assert.Equal(t, "Independent reading", obs.Context.What)
	require.Len(t, obs.Episodes, 3)

	assert.Equal(t, models.OnTask, obs.Episodes[0].Status)
	assert.Equal(t, 220, obs.Episodes[0].Duration)
	assert.Equal(t, t0, obs.Episodes[0].StartTime)
	assert.Equal(t, models.OffTask, obs.Episodes[1].Status)
	assert.Equal(t, 50, obs.Episodes[1].Duration)
	assert.Equal(t, models.Transitioning, obs.Episodes[2].Status)
	assert.Equal(t, 30, obs.Episodes[2].Duration)

	snap := f.m.Snapshot()
	assert.Equal(t, session.Stopped, snap.Phase)
	assert.Equal(t, 300, snap.Elapsed)
	require.NotNil(t, snap.Final)
	assert.Equal(t, 300, snap.Final.Duration)

	assert.Zero(t, f.clock.Running(), "no ticker may survive End")

	f.advance(30)
	assert.Equal(t, 300, f.m.Snapshot().Elapsed)

	assert.Len(t, f.sink.saved, 1)
}

func TestOverlappingEpisodesAreTrimmed(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	// episodes measured by wall clock while the session is paused can claim
	// more than the elapsed time
	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(60)
	require.NoError(t, f.m.Pause())
	f.advance(60)
	_, err := f.m.EndEpisode()
	require.NoError(t, err)

	obs, err := f.m.End(context.Background())
	require.NoError(t, err)

	require.Len(t, obs.Episodes, 1)
	assert.Equal(t, 60, obs.Episodes[0].Duration)
	assert.Equal(t, models.OffTask, obs.Episodes[0].Status)
}

func TestSaveFailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	f.sink.err = errors.New("disk full")
	f.start(t)
	f.advance(30)

	_, err := f.m.End(context.Background())
	assert.ErrorIs(t, err, session.ErrSaveFailed)

	assert.Equal(t, session.Running, f.m.Snapshot().Phase)

	f.advance(10)
	assert.Equal(t, 40, f.m.Snapshot().Elapsed)

	f.sink.err = nil

	obs, err := f.m.End(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, obs.Duration)
}

func TestEndFromPaused(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(12)
	require.NoError(t, f.m.Pause())

	obs, err := f.m.End(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, obs.Duration)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.m.Cancel())
		assert.Equal(t, session.Idle, f.m.Snapshot().Phase)
	}

	assert.Empty(t, f.sink.saved)
	assert.Empty(t, f.wake.calls)
}

func TestCancelAbandonsLiveSession(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(8)

	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(4)

	require.NoError(t, f.m.Cancel())

	snap := f.m.Snapshot()
	assert.Equal(t, session.Idle, snap.Phase)
	assert.Zero(t, snap.Elapsed)
	assert.Nil(t, snap.Active)
	assert.Zero(t, f.clock.Running())
	assert.Empty(t, f.sink.saved)

	f.advance(10)
	assert.Zero(t, f.m.Snapshot().Elapsed)

	require.NoError(t, f.m.Start(validParams()))
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(5)

	assert.ErrorIs(t, f.m.Reset(), session.ErrInvalidPhase)

	_, err := f.m.End(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.m.Reset())

	snap := f.m.Snapshot()
	assert.Equal(t, session.Idle, snap.Phase)
	assert.Zero(t, snap.Elapsed)
	assert.Nil(t, snap.Final)
	assert.Empty(t, snap.Log)
}

func TestUpdateContext(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.m.UpdateContext(models.Context{}), session.ErrInvalidPhase)

	f.start(t)
	f.advance(3)

	require.NoError(t, f.m.UpdateContext(models.Context{Notes: "needed two prompts"}))

	obs, err := f.m.End(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "needed two prompts", obs.Context.Notes)
}

func TestSnapshotContextIsACopy(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	snap := f.m.Snapshot()
	assert.Equal(t, []string{"Peers"}, snap.Context.Who)

	snap.Context.Who[0] = "Teacher"
	snap.Context.Prompts = append(snap.Context.Prompts, models.Prompt{Type: "Wait Time"})

	assert.Equal(t, []string{"Peers"}, f.m.Snapshot().Context.Who)
	assert.Empty(t, f.m.Snapshot().Context.Prompts)

	require.NoError(t, f.m.UpdateContext(snap.Context))

	got := f.m.Snapshot().Context
	assert.Equal(t, []string{"Teacher"}, got.Who)
	require.Len(t, got.Prompts, 1)
	assert.Equal(t, "Wait Time", got.Prompts[0].Type)
}

func TestWakeLockFollowsRunningPhase(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(1)

	require.NoError(t, f.m.Pause())
	require.NoError(t, f.m.Resume())

	_, err := f.m.End(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"acquire", "release", "acquire", "release"}, f.wake.calls)
}

func TestWakeLockRunsOutsideMachineLock(t *testing.T) {
	w := &reentrantWake{}

	m := session.New(
		session.WithClock(clock.NewFake(t0)),
		session.WithWakeLock(w),
	)
	w.m = m

	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = m.Start(validParams())
		_ = m.Pause()
		_ = m.Cancel()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wake lock calls deadlocked the machine")
	}

	assert.Equal(t, []session.Phase{session.Running, session.Paused}, w.phases)
}

func TestCancelReleasesWakeLock(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	require.NoError(t, f.m.Cancel())
	require.NoError(t, f.m.Cancel())

	assert.Equal(t, []string{"acquire", "release"}, f.wake.calls)
}

func TestWakeLockFailureDoesNotLeak(t *testing.T) {
	m := session.New(
		session.WithClock(clock.NewFake(t0)),
		session.WithWakeLock(panickyWake{}),
	)

	require.NoError(t, m.Start(validParams()))
	require.NoError(t, m.Pause())
	require.NoError(t, m.Cancel())
}

func TestHooksSeeTransitions(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.advance(2)

	require.NoError(t, f.m.StartEpisode(models.OffTask))
	f.advance(2)
	_, err := f.m.EndEpisode()
	require.NoError(t, err)

	require.NoError(t, f.m.Pause())
	_, err = f.m.End(context.Background())
	require.NoError(t, err)

	events := make([]session.Event, len(f.trs))
	for i := range f.trs {
		events[i] = f.trs[i].Event
	}

	assert.Equal(t, []session.Event{
		session.EventStart,
		session.EventEpisodeStart,
		session.EventEpisodeEnd,
		session.EventPause,
		session.EventEnd,
	}, events)

	last := f.trs[len(f.trs)-1]
	assert.Equal(t, session.Paused, last.From)
	assert.Equal(t, session.Stopped, last.To)
	assert.Equal(t, 4, last.Elapsed)
	assert.Equal(t, models.OffTask, f.trs[2].Status)
}
