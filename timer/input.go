package timer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/ontask/internal/models"
)

// inputMode is what the keyboard is typing into.
type inputMode int

const (
	modeNone inputMode = iota
	modeNotes
	modePrompt
	modeRate
)

func newInput() textinput.Model {
	in := textinput.New()
	in.CharLimit = 500
	in.Width = maxWidth - padding*2
	in.PromptStyle = in.PromptStyle.Bold(true)

	return in
}

// openInput starts typing notes or a prompt type.
func (t *Timer) openInput(mode inputMode) tea.Cmd {
	t.mode = mode
	t.err = nil

	switch mode {
	case modeNotes:
		t.input.Prompt = "Notes: "
		t.input.Placeholder = "what the student is doing"
		t.input.ShowSuggestions = false
		t.input.SetValue(t.snap.Context.Notes)
	case modePrompt:
		t.input.Prompt = "Prompt: "
		t.input.Placeholder = "Verbal Prompt (tab completes)"
		t.input.ShowSuggestions = true
		t.input.SetSuggestions(models.PromptTypes)
		t.input.SetValue("")
	}

	t.input.CursorEnd()

	return t.input.Focus()
}

func (t *Timer) closeInput() {
	t.mode = modeNone
	t.input.Blur()
	t.input.SetValue("")
}

// commitInput writes the typed text into the session context.
func (t *Timer) commitInput() error {
	value := strings.TrimSpace(t.input.Value())
	c := t.machine.Snapshot().Context

	switch t.mode {
	case modeNotes:
		c.Notes = value
	case modePrompt:
		if value == "" {
			return errEmptyPrompt
		}

		c.Prompts = append(c.Prompts, models.Prompt{
			Type:      value,
			Timestamp: t.machine.Now(),
		})
	}

	return t.machine.UpdateContext(c)
}

// ratePrompt sets the effectiveness of the most recently logged prompt.
func (t *Timer) ratePrompt(effectiveness string) error {
	c := t.machine.Snapshot().Context
	if len(c.Prompts) == 0 {
		return nil
	}

	c.Prompts[len(c.Prompts)-1].Effectiveness = effectiveness

	return t.machine.UpdateContext(c)
}

// handleInput routes keys while notes or a prompt are being entered.
func (t *Timer) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, defaultKeymap.dismiss):
		t.closeInput()

	case t.mode == modeRate:
		var effectiveness string

		switch {
		case key.Matches(msg, defaultKeymap.rateEffective):
			effectiveness = models.Effective
		case key.Matches(msg, defaultKeymap.ratePartial):
			effectiveness = models.PartiallyEffective
		case key.Matches(msg, defaultKeymap.rateIneffective):
			effectiveness = models.Ineffective
		default:
			return t, nil
		}

		t.err = t.ratePrompt(effectiveness)
		t.closeInput()

	case key.Matches(msg, defaultKeymap.confirm):
		mode := t.mode

		t.err = t.commitInput()
		if t.err != nil {
			return t, nil
		}

		t.closeInput()

		if mode == modePrompt {
			t.mode = modeRate
		}

	default:
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}

	t.snap = t.machine.Snapshot()

	return t, nil
}
