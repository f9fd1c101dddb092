package timer

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/ontask/internal/models"
)

// handleKeyPress maps a key to a session operation. Rejected operations
// leave the session unchanged and their error is shown until the next key.
func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t.mode != modeNone {
		if msg.Type != tea.KeyCtrlC {
			return t.handleInput(msg)
		}

		t.closeInput()
	}

	var err error

	switch {
	case key.Matches(msg, defaultKeymap.notes):
		return t, t.openInput(modeNotes)

	case key.Matches(msg, defaultKeymap.prompt):
		return t, t.openInput(modePrompt)

	case key.Matches(msg, defaultKeymap.togglePlay):
		err = t.machine.Toggle()

	case key.Matches(msg, defaultKeymap.onTask):
		err = t.machine.StartEpisode(models.OnTask)

	case key.Matches(msg, defaultKeymap.offTask):
		err = t.machine.StartEpisode(models.OffTask)

	case key.Matches(msg, defaultKeymap.transitioning):
		err = t.machine.StartEpisode(models.Transitioning)

	case key.Matches(msg, defaultKeymap.endEpisode):
		_, err = t.machine.EndEpisode()

	case key.Matches(msg, defaultKeymap.cancelEpisode):
		err = t.machine.CancelEpisode()

	case key.Matches(msg, defaultKeymap.end):
		obs, endErr := t.machine.End(t.ctx)
		if endErr == nil {
			t.saved = obs
			t.quitting = true
			t.snap = t.machine.Snapshot()

			return t, tea.Quit
		}

		err = endErr

	case key.Matches(msg, defaultKeymap.quit):
		err = t.machine.Cancel()
		if err == nil {
			t.quitting = true
			return t, tea.Quit
		}

	default:
		return t, nil
	}

	t.err = err
	t.snap = t.machine.Snapshot()

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		if t.quitting {
			return t, nil
		}

		t.snap = t.machine.Snapshot()

		return t, tea.Batch(refresh(), t.progress.SetPercent(t.onTaskShare()))

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	if t.mode == modeNotes || t.mode == modePrompt {
		var cmd tea.Cmd

		t.input, cmd = t.input.Update(msg)

		return t, cmd
	}

	return t, nil
}
