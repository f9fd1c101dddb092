// Package models defines the observation records shared by the session engine,
// the store, and the reporting commands
package models

import (
	"slices"
	"time"
)

// Status is the behavioral status of a student during an interval.
type Status string

const (
	OnTask        Status = "on-task"
	OffTask       Status = "off-task"
	Transitioning Status = "transitioning"
)

// Statuses lists every known status in display order.
var Statuses = []Status{OnTask, OffTask, Transitioning}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case OnTask, OffTask, Transitioning:
		return true
	}

	return false
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case OnTask:
		return "On task"
	case OffTask:
		return "Off task"
	case Transitioning:
		return "Transitioning"
	}

	return string(s)
}

// Episode is a contiguous interval of an observation with one status.
type Episode struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitzero"`
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	Duration  int       `json:"duration"` // seconds
}

// Record is the reconciled outcome of a session. The durations of its
// episodes always add up to Duration.
type Record struct {
	Status   Status    `json:"status"`
	Episodes []Episode `json:"episodes"`
	Duration int       `json:"duration"` // seconds
}

// Effectiveness ratings of a prompt.
const (
	Effective          = "effective"
	PartiallyEffective = "partially-effective"
	Ineffective        = "ineffective"
)

// Effectivenesses lists the ratings a prompt may be given.
var Effectivenesses = []string{Effective, PartiallyEffective, Ineffective}

// PromptTypes lists the interventions offered when logging a prompt. Other
// types are allowed.
var PromptTypes = []string{
	"Verbal Prompt",
	"Visual Prompt",
	"Physical Prompt",
	"Gestural Prompt",
	"Positional Prompt",
	"Model/Demo",
	"Wait Time",
	"Choice Offered",
	"Break Provided",
	"Redirection",
	"Behavior Praise",
	"Token/Reward",
	"Environmental Mod",
}

// ValidEffectiveness reports whether s is empty or a known rating.
func ValidEffectiveness(s string) bool {
	switch s {
	case "", Effective, PartiallyEffective, Ineffective:
		return true
	}

	return false
}

// Prompt is an intervention given to the student during an observation.
type Prompt struct {
	Timestamp     time.Time `json:"timestamp"`
	Type          string    `json:"type"`
	Effectiveness string    `json:"effectiveness,omitempty"`
}

// Context is the free-form "5W" metadata captured alongside an observation.
// The session engine never inspects it.
type Context struct {
	Who     []string `json:"who"`
	What    string   `json:"what"`
	When    string   `json:"when"`
	Where   string   `json:"where"`
	Why     string   `json:"why"`
	Notes   string   `json:"notes"`
	Prompts []Prompt `json:"prompts,omitempty"`
}

// Observation is a finalized record as it is persisted.
type Observation struct {
	Timestamp    time.Time `json:"timestamp"`
	LastModified time.Time `json:"last_modified,omitzero"`
	ID           string    `json:"id"`
	Observer     string    `json:"observer"`
	Student      string    `json:"student"`
	Behavior     string    `json:"behavior,omitempty"`
	Status       Status    `json:"status"`
	Episodes     []Episode `json:"episodes"`
	Context      Context   `json:"context"`
	Duration     int       `json:"duration"` // seconds
	Version      int       `json:"version"`
}

// Clone returns a copy of c that shares no slices with it.
func (c Context) Clone() Context {
	c.Who = slices.Clone(c.Who)
	c.Prompts = slices.Clone(c.Prompts)

	return c
}

// Record returns the reconciled part of the observation.
func (o *Observation) Record() Record {
	return Record{
		Status:   o.Status,
		Duration: o.Duration,
		Episodes: o.Episodes,
	}
}
