// Package session runs a single classroom observation: it owns the elapsed
// time, the primary status and the episode log, and reconciles them into a
// finalized record when the session ends
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ayoisaiah/ontask/internal/clock"
	"github.com/ayoisaiah/ontask/internal/episode"
	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/reconcile"
)

const tickInterval = time.Second

// Sink persists finalized observations. Save is expected to assign the ID and
// timestamp of the observation.
type Sink interface {
	Save(ctx context.Context, obs *models.Observation) error
}

// WakeLock keeps the device awake while a session is running. Implementations
// must not block and must handle their own failures.
type WakeLock interface {
	Acquire()
	Release()
}

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	Context   models.Context
	Final     *models.Record
	Active    *episode.Active
	Observer  string
	Student   string
	Primary   models.Status
	Log       []models.Episode
	Phase     Phase
	Elapsed   int
	Committed int
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithSink sets the destination of finalized observations.
func WithSink(s Sink) Option {
	return func(m *Machine) {
		m.sink = s
	}
}

// WithWakeLock sets the sleep prevention collaborator.
func WithWakeLock(w WakeLock) Option {
	return func(m *Machine) {
		m.wake = w
	}
}

// WithHook registers a transition hook.
func WithHook(h Hook) Option {
	return func(m *Machine) {
		m.hooks = append(m.hooks, h)
	}
}

// Machine is the session phase machine. All operations and ticks are
// serialised by its mutex.
type Machine struct {
	clock         clock.Clock
	sink          Sink
	wake          WakeLock
	ticker        clock.Ticker
	episodeTicker clock.Ticker
	episodes      *episode.Timer
	final         *models.Record
	params        Params
	hooks         []Hook
	log           []models.Episode
	gen           uint64
	episodeGen    uint64
	elapsed       int
	phase         Phase
	mu            sync.Mutex

	wakeMu sync.Mutex
	awake  bool // guarded by wakeMu
}

// New returns an idle machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		clock: clock.System(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// do runs fn under the lock and notifies hooks when it succeeds.
func (m *Machine) do(ev Event, fn func() (models.Status, error)) error {
	m.mu.Lock()

	from := m.phase

	status, err := fn()

	tr := Transition{
		At:      m.clock.Now(),
		Event:   ev,
		Status:  status,
		From:    from,
		To:      m.phase,
		Elapsed: m.elapsed,
	}
	hooks := m.hooks

	m.mu.Unlock()

	if err != nil {
		return err
	}

	m.syncWake()

	for _, h := range hooks {
		h(tr)
	}

	return nil
}

// Start begins a new session with the given parameters.
func (m *Machine) Start(p Params) error {
	return m.do(EventStart, func() (models.Status, error) {
		if m.phase != Idle {
			return "", ErrInvalidPhase.Fmt("start a session", m.phase)
		}

		if err := p.Validate(); err != nil {
			return "", err
		}

		m.params = p.normalise()
		m.elapsed = 0
		m.log = nil
		m.final = nil
		m.episodes = episode.New(p.Status)
		m.ticker = m.clock.NewTicker(tickInterval)
		m.episodeTicker = m.clock.NewTicker(tickInterval)

		m.run()

		return "", nil
	})
}

// Pause freezes the elapsed time. An active episode keeps running.
func (m *Machine) Pause() error {
	return m.do(EventPause, func() (models.Status, error) {
		if m.phase != Running {
			return "", ErrInvalidPhase.Fmt("pause", m.phase)
		}

		m.halt(Paused)

		return "", nil
	})
}

// Resume continues a paused session.
func (m *Machine) Resume() error {
	return m.do(EventResume, func() (models.Status, error) {
		if m.phase != Paused {
			return "", ErrInvalidPhase.Fmt("resume", m.phase)
		}

		m.run()

		return "", nil
	})
}

// Toggle pauses a running session or resumes a paused one.
func (m *Machine) Toggle() error {
	m.mu.Lock()
	phase := m.phase
	m.mu.Unlock()

	if phase == Paused {
		return m.Resume()
	}

	return m.Pause()
}

// End reconciles the session, hands the observation to the sink and stops
// the session. The session is left untouched if any step fails.
func (m *Machine) End(ctx context.Context) (*models.Observation, error) {
	var obs *models.Observation

	err := m.do(EventEnd, func() (models.Status, error) {
		if !m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("end the session", m.phase)
		}

		if _, ok := m.episodes.Active(); ok {
			return "", ErrEpisodeInProgress
		}

		if m.elapsed == 0 {
			return "", ErrZeroDuration
		}

		rec, err := reconcile.Reconcile(
			m.elapsed,
			m.params.Status,
			m.log,
			m.clock.Now(),
		)
		if err != nil {
			return "", err
		}

		o := &models.Observation{
			Observer: m.params.Observer,
			Student:  m.params.Student,
			Behavior: m.params.Behavior,
			Status:   rec.Status,
			Duration: rec.Duration,
			Episodes: rec.Episodes,
			Context:  m.params.Context,
		}

		if m.sink != nil {
			if err := m.sink.Save(ctx, o); err != nil {
				return "", ErrSaveFailed.Wrap(err)
			}
		}

		m.halt(Stopped)
		m.stopEpisodeTicker()
		m.final = &rec

		obs = o

		return "", nil
	})

	return obs, err
}

// Reset returns a stopped session to idle.
func (m *Machine) Reset() error {
	return m.do(EventReset, func() (models.Status, error) {
		if m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("reset", m.phase)
		}

		m.clear()

		return "", nil
	})
}

// Cancel abandons the session from any phase without emitting a record.
func (m *Machine) Cancel() error {
	return m.do(EventCancel, func() (models.Status, error) {
		m.stopTickers()
		m.clear()

		return "", nil
	})
}

// UpdateContext replaces the context that will be saved with the observation.
func (m *Machine) UpdateContext(c models.Context) error {
	return m.do(EventContext, func() (models.Status, error) {
		if !m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("update the context", m.phase)
		}

		m.params.Context = c.Clone()

		return "", nil
	})
}

// StartEpisode starts tagging time with status. See episode.Timer.Start for
// which error is returned when an episode is already active.
func (m *Machine) StartEpisode(status models.Status) error {
	return m.do(EventEpisodeStart, func() (models.Status, error) {
		if !m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("start an episode", m.phase)
		}

		if err := m.episodes.Start(status, m.clock.Now()); err != nil {
			return "", err
		}

		m.episodeGen++
		gen := m.episodeGen
		m.episodeTicker.Start(func() { m.onEpisodeTick(gen) })

		return status, nil
	})
}

// EndEpisode commits the active episode to the log.
func (m *Machine) EndEpisode() (models.Episode, error) {
	var ep models.Episode

	err := m.do(EventEpisodeEnd, func() (models.Status, error) {
		if !m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("end an episode", m.phase)
		}

		var err error

		ep, err = m.episodes.End(m.clock.Now())
		if err != nil {
			return "", err
		}

		m.stopEpisodeTicker()
		m.log = append(m.log, ep)

		return ep.Status, nil
	})

	return ep, err
}

// CancelEpisode discards the active episode.
func (m *Machine) CancelEpisode() error {
	return m.do(EventEpisodeCancel, func() (models.Status, error) {
		if !m.phase.Live() {
			return "", ErrInvalidPhase.Fmt("cancel an episode", m.phase)
		}

		active, ok := m.episodes.Active()
		if !ok {
			return "", ErrNoActiveEpisode
		}

		if err := m.episodes.Cancel(); err != nil {
			return "", err
		}

		m.stopEpisodeTicker()

		return active.Status, nil
	})
}

// Snapshot returns the current state of the session.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Phase:     m.phase,
		Elapsed:   m.elapsed,
		Observer:  m.params.Observer,
		Student:   m.params.Student,
		Primary:   m.params.Status,
		Context:   m.params.Context.Clone(),
		Committed: len(m.log),
		Log:       slices.Clone(m.log),
	}

	if m.episodes != nil {
		if active, ok := m.episodes.Active(); ok {
			s.Active = &active
		}
	}

	if m.final != nil {
		rec := *m.final
		rec.Episodes = slices.Clone(rec.Episodes)
		s.Final = &rec
	}

	return s
}

// Now returns the current time of the machine's clock.
func (m *Machine) Now() time.Time {
	return m.clock.Now()
}

// run moves to Running under a fresh tick generation.
func (m *Machine) run() {
	m.gen++
	gen := m.gen

	m.phase = Running
	m.ticker.Start(func() { m.onTick(gen) })
}

// halt leaves Running for the given phase. Ticks already in flight carry the
// old generation and are discarded.
func (m *Machine) halt(to Phase) {
	if m.phase == Running {
		m.ticker.Stop()
	}

	m.gen++
	m.phase = to
}

func (m *Machine) stopEpisodeTicker() {
	m.episodeGen++

	if m.episodeTicker != nil {
		m.episodeTicker.Stop()
	}
}

func (m *Machine) stopTickers() {
	m.gen++

	if m.ticker != nil {
		m.ticker.Stop()
	}

	m.stopEpisodeTicker()
}

func (m *Machine) clear() {
	m.phase = Idle
	m.elapsed = 0
	m.log = nil
	m.final = nil
	m.episodes = nil
	m.params = Params{}
	m.ticker = nil
	m.episodeTicker = nil
}

func (m *Machine) onTick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.phase != Running {
		return
	}

	m.elapsed++
}

func (m *Machine) onEpisodeTick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.episodeGen || m.episodes == nil {
		return
	}

	m.episodes.Tick()
}

// syncWake brings the wake lock in line with the current phase. It runs
// outside the machine lock, so the wake lock may be slow or call back into
// the machine. Racing callers converge on the latest phase.
func (m *Machine) syncWake() {
	if m.wake == nil {
		return
	}

	m.wakeMu.Lock()
	defer m.wakeMu.Unlock()

	m.mu.Lock()
	running := m.phase == Running
	m.mu.Unlock()

	switch {
	case running && !m.awake:
		m.awake = true
		safely("acquire wake lock", m.wake.Acquire)
	case !running && m.awake:
		m.awake = false
		safely("release wake lock", m.wake.Release)
	}
}

// safely runs a collaborator callback, keeping its panics out of the machine.
func safely(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("collaborator failed", slog.String("op", op), slog.Any("panic", r))
		}
	}()

	fn()
}
