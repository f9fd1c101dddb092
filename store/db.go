package store

import (
	"time"

	"github.com/ayoisaiah/ontask/internal/models"
)

// Filter narrows the observations returned by ListObservations. Zero fields
// match everything.
type Filter struct {
	Since   time.Time
	Until   time.Time
	Student string
}

// DB is the database storage interface.
type DB interface {
	// SaveObservation stores a new observation, assigning its ID and
	// timestamp if they are unset
	SaveObservation(obs *models.Observation) error
	// UpdateObservation overwrites an existing observation and records the
	// modification time
	UpdateObservation(obs *models.Observation) error
	// GetObservation returns the observation whose ID is id, or the only
	// observation whose ID starts with id
	GetObservation(id string) (*models.Observation, error)
	// ListObservations returns the matching observations, newest first
	ListObservations(f Filter) ([]*models.Observation, error)
	// DeleteObservations deletes one or more saved observations
	DeleteObservations(ids []string) error
	// RecentStudents returns the most recently observed students, most
	// recent first
	RecentStudents() ([]string, error)
	// AddRecentStudent moves student to the front of the recent students
	// list, keeping at most limit entries
	AddRecentStudent(student string, limit int) error
	// Close ends the database connection
	Close() error
}
