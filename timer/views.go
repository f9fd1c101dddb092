package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/reconcile"
	"github.com/ayoisaiah/ontask/internal/session"
	"github.com/ayoisaiah/ontask/internal/timeutil"
	"github.com/ayoisaiah/ontask/stats"
)

// onTaskShare is the fraction of the session so far that would be recorded
// as on task if the session ended now.
func (t *Timer) onTaskShare() float64 {
	if t.snap.Elapsed == 0 {
		return 0
	}

	rec, err := reconcile.Reconcile(t.snap.Elapsed, t.snap.Primary, t.snap.Log, t.machine.Now())
	if err != nil {
		return 0
	}

	return float64(stats.Compute(rec, t.opts.DriftTolerance).OnTask) / 100
}

func (t *Timer) headerView() string {
	var s strings.Builder

	s.WriteString(t.style.badge(t.snap.Primary))
	s.WriteString(t.style.main.Render(t.snap.Student))

	if t.snap.Observer != "" {
		s.WriteString(t.style.hint.Render(" observed by " + t.snap.Observer))
	}

	return s.String()
}

func (t *Timer) episodeView() string {
	if t.snap.Active == nil {
		return t.style.hint.Render(fmt.Sprintf("%d episodes recorded", t.snap.Committed))
	}

	timeFormat := "03:04:05 PM"
	if t.opts.TwentyFourHour {
		timeFormat = "15:04:05"
	}

	return t.style.badge(t.snap.Active.Status) +
		t.style.secondary.Render(timeutil.Clock(t.snap.Active.Shown)) +
		t.style.hint.Render(" since "+t.snap.Active.StartTime.Format(timeFormat))
}

// contextView summarises the notes and prompts recorded so far.
func (t *Timer) contextView() string {
	var parts []string

	if n := len(t.snap.Context.Prompts); n > 0 {
		last := t.snap.Context.Prompts[n-1]

		entry := fmt.Sprintf("%d prompts, last: %s", n, last.Type)
		if last.Effectiveness != "" {
			entry += " (" + last.Effectiveness + ")"
		}

		parts = append(parts, entry)
	}

	if notes := t.snap.Context.Notes; notes != "" {
		if r := []rune(notes); len(r) > maxWidth/2 {
			notes = string(r[:maxWidth/2]) + "…"
		}

		parts = append(parts, "notes: "+notes)
	}

	if len(parts) == 0 {
		return ""
	}

	return t.style.hint.Render(strings.Join(parts, " · "))
}

// inputView shows the field being typed into.
func (t *Timer) inputView() string {
	if t.mode == modeRate {
		prompts := t.snap.Context.Prompts
		if len(prompts) == 0 {
			return ""
		}

		return t.style.secondary.Render(
			"How effective was the " + prompts[len(prompts)-1].Type + "?",
		)
	}

	return t.input.View()
}

func (t *Timer) helpView() string {
	switch t.mode {
	case modeNotes, modePrompt:
		return t.help.ShortHelpView([]key.Binding{defaultKeymap.confirm, defaultKeymap.dismiss})
	case modeRate:
		return t.help.ShortHelpView([]key.Binding{
			defaultKeymap.rateEffective,
			defaultKeymap.ratePartial,
			defaultKeymap.rateIneffective,
			defaultKeymap.dismiss,
		})
	}

	bindings := []key.Binding{defaultKeymap.togglePlay}

	if t.snap.Active == nil {
		for _, status := range models.Statuses {
			if status == t.snap.Primary {
				continue
			}

			switch status {
			case models.OnTask:
				bindings = append(bindings, defaultKeymap.onTask)
			case models.OffTask:
				bindings = append(bindings, defaultKeymap.offTask)
			case models.Transitioning:
				bindings = append(bindings, defaultKeymap.transitioning)
			}
		}

		bindings = append(bindings, defaultKeymap.end)
	} else {
		bindings = append(bindings, defaultKeymap.endEpisode, defaultKeymap.cancelEpisode)
	}

	bindings = append(bindings, defaultKeymap.notes, defaultKeymap.prompt, defaultKeymap.quit)

	return t.help.ShortHelpView(bindings)
}

func (t *Timer) View() string {
	if t.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(t.headerView())
	s.WriteString("\n\n")
	s.WriteString(t.style.main.Render(timeutil.Clock(t.snap.Elapsed)))

	if t.snap.Phase == session.Paused {
		s.WriteString(t.style.secondary.Render(" [Paused]"))
	}

	s.WriteString("\n\n")
	s.WriteString(t.episodeView())
	s.WriteString("\n\n")
	s.WriteString(t.progress.View())
	s.WriteString(t.style.hint.Render(" on task"))

	if ctx := t.contextView(); ctx != "" {
		s.WriteString("\n\n")
		s.WriteString(ctx)
	}

	if t.mode != modeNone {
		s.WriteString("\n\n")
		s.WriteString(t.inputView())
	}

	if t.err != nil {
		s.WriteString("\n\n")
		s.WriteString(t.style.errorMsg.Render(t.err.Error()))
	}

	s.WriteString("\n\n")
	s.WriteString(t.helpView())

	return t.style.base.Render(s.String())
}
