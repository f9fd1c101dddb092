// Package stats computes how the time of an observation was spread across
// behavioral statuses
package stats

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/timeutil"
)

// DefaultTolerance is the number of seconds the episodes of a record may
// disagree with its duration before the record is reported as drifting.
const DefaultTolerance = 2

// Stats is the status breakdown of a single record.
type Stats struct {
	Status models.Status
	// TotalTime is the sum of the episode durations, or the record duration
	// when the record has no episodes.
	TotalTime     int
	Duration      int
	OnTask        int
	OffTask       int
	Transitioning int
	HasEpisodes   bool
	Drift         bool
}

// Percent returns the rounded share of time spent in status.
func (s Stats) Percent(status models.Status) int {
	switch status {
	case models.OnTask:
		return s.OnTask
	case models.OffTask:
		return s.OffTask
	case models.Transitioning:
		return s.Transitioning
	}

	return 0
}

func (s *Stats) set(status models.Status, pct int) {
	switch status {
	case models.OnTask:
		s.OnTask = pct
	case models.OffTask:
		s.OffTask = pct
	case models.Transitioning:
		s.Transitioning = pct
	}
}

// Compute returns the status breakdown of rec. Each percentage is rounded
// independently so they need not add up to 100.
//
// A record whose episode total differs from its duration by more than
// tolerance seconds is logged and flagged, but its percentages are left as
// computed from the episodes. A negative tolerance selects DefaultTolerance.
func Compute(rec models.Record, tolerance int) Stats {
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}

	s := Stats{
		Status:   rec.Status,
		Duration: rec.Duration,
	}

	if len(rec.Episodes) == 0 {
		s.TotalTime = rec.Duration
		s.set(rec.Status, 100)

		return s
	}

	s.HasEpisodes = true

	byStatus := timeByStatus(rec)

	for _, v := range byStatus {
		s.TotalTime += v
	}

	if s.TotalTime > 0 {
		for status, v := range byStatus {
			s.set(status, percent(v, s.TotalTime))
		}
	}

	if drift := s.TotalTime - rec.Duration; drift > tolerance || -drift > tolerance {
		s.Drift = true

		slog.Warn(
			"episode durations do not match the recorded duration",
			slog.Int("episodes_total", s.TotalTime),
			slog.Int("duration", rec.Duration),
			slog.Int("tolerance", tolerance),
		)
	}

	return s
}

// timeByStatus sums the seconds spent in each status. A record without
// episodes counts as one episode of its primary status.
func timeByStatus(rec models.Record) map[models.Status]int {
	m := make(map[models.Status]int, len(models.Statuses))

	if len(rec.Episodes) == 0 {
		m[rec.Status] = rec.Duration
		return m
	}

	for i := range rec.Episodes {
		m[rec.Episodes[i].Status] += rec.Episodes[i].Duration
	}

	return m
}

func percent(v, total int) int {
	return timeutil.Round(100 * float64(v) / float64(total))
}

// StudentSummary aggregates every observation of one student.
type StudentSummary struct {
	Student       string
	Observations  int
	Drifting      int
	TotalTime     int
	OnTask        int
	OffTask       int
	Transitioning int
}

// Summarize groups observations by student and weights each status by the
// time spent in it. Students are returned in natural order.
func Summarize(observations []*models.Observation, tolerance int) []StudentSummary {
	type acc struct {
		summary StudentSummary
		time    map[models.Status]int
	}

	byStudent := make(map[string]*acc)

	for _, obs := range observations {
		key := strings.TrimSpace(obs.Student)

		a, ok := byStudent[key]
		if !ok {
			a = &acc{
				summary: StudentSummary{Student: key},
				time:    make(map[models.Status]int),
			}
			byStudent[key] = a
		}

		rec := obs.Record()

		if Compute(rec, tolerance).Drift {
			a.summary.Drifting++
		}

		a.summary.Observations++

		for status, v := range timeByStatus(rec) {
			a.time[status] += v
			a.summary.TotalTime += v
		}
	}

	result := make([]StudentSummary, 0, len(byStudent))

	for _, a := range byStudent {
		s := a.summary

		if s.TotalTime > 0 {
			s.OnTask = percent(a.time[models.OnTask], s.TotalTime)
			s.OffTask = percent(a.time[models.OffTask], s.TotalTime)
			s.Transitioning = percent(a.time[models.Transitioning], s.TotalTime)
		}

		result = append(result, s)
	}

	slices.SortFunc(result, func(a, b StudentSummary) int {
		switch {
		case natural.Less(a.Student, b.Student):
			return -1
		case natural.Less(b.Student, a.Student):
			return 1
		}

		return 0
	})

	return result
}

// PromptSummary counts how a prompt type fared across observations.
type PromptSummary struct {
	Type        string
	Total       int
	Effective   int
	Partial     int
	Ineffective int
	// SuccessRate is the percentage of prompts that worked, with partially
	// effective prompts counted as half.
	SuccessRate int
}

// SummarizePrompts groups the logged prompts by type. Unrated prompts count
// towards the total only. Types are returned in natural order.
func SummarizePrompts(observations []*models.Observation) []PromptSummary {
	byType := make(map[string]*PromptSummary)

	for _, obs := range observations {
		for _, p := range obs.Context.Prompts {
			key := strings.TrimSpace(p.Type)
			if key == "" {
				continue
			}

			s, ok := byType[key]
			if !ok {
				s = &PromptSummary{Type: key}
				byType[key] = s
			}

			s.Total++

			switch p.Effectiveness {
			case models.Effective:
				s.Effective++
			case models.PartiallyEffective:
				s.Partial++
			case models.Ineffective:
				s.Ineffective++
			}
		}
	}

	result := make([]PromptSummary, 0, len(byType))

	for _, s := range byType {
		s.SuccessRate = timeutil.Round(
			100 * (float64(s.Effective) + 0.5*float64(s.Partial)) / float64(s.Total),
		)

		result = append(result, *s)
	}

	slices.SortFunc(result, func(a, b PromptSummary) int {
		switch {
		case natural.Less(a.Type, b.Type):
			return -1
		case natural.Less(b.Type, a.Type):
			return 1
		}

		return 0
	})

	return result
}
