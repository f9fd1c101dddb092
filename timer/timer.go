// Package timer is the interactive terminal view of a running observation
package timer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/session"
)

const refreshInterval = 250 * time.Millisecond

// Options controls the presentation of the timer.
type Options struct {
	DriftTolerance int
	DarkTheme      bool
	TwentyFourHour bool
}

// Timer is a bubbletea model that drives a session.Machine from the
// keyboard. The machine must already be running.
type Timer struct {
	ctx      context.Context
	machine  *session.Machine
	saved    *models.Observation
	err      error
	style    styles
	help     help.Model
	progress progress.Model
	input    textinput.Model
	opts     Options
	snap     session.Snapshot
	mode     inputMode
	quitting bool
}

type refreshMsg time.Time

// New returns a timer view for m.
func New(ctx context.Context, m *session.Machine, opts Options) *Timer {
	return &Timer{
		ctx:      ctx,
		machine:  m,
		opts:     opts,
		style:    newStyles(opts.DarkTheme),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:    newInput(),
		snap:     m.Snapshot(),
	}
}

// Saved returns the observation saved when the session was ended, or nil if
// the session was abandoned.
func (t *Timer) Saved() *models.Observation {
	return t.saved
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(at time.Time) tea.Msg {
		return refreshMsg(at)
	})
}

func (t *Timer) Init() tea.Cmd {
	return refresh()
}
