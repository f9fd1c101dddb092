// Package store persists observations and the recent students list in a
// BoltDB database
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/ontask/internal/models"
)

const (
	observationBucket = "observations"
	recentBucket      = "recent"
	metaBucket        = "meta"
)

var (
	recentStudentsKey = []byte("students")
	schemaVersionKey  = []byte("schema_version")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	now func() time.Time
}

// SaveObservation stores obs under a new time-ordered ID.
func (c *Client) SaveObservation(obs *models.Observation) error {
	if obs.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}

		obs.ID = id.String()
	}

	if obs.Timestamp.IsZero() {
		obs.Timestamp = c.now()
	}

	obs.Version = CurrentVersion

	return c.put(obs)
}

func (c *Client) UpdateObservation(obs *models.Observation) error {
	err := c.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(observationBucket)).Get([]byte(obs.ID)) == nil {
			return ErrObservationNotFound.Fmt(obs.ID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	obs.LastModified = c.now()
	obs.Version = CurrentVersion

	return c.put(obs)
}

func (c *Client) put(obs *models.Observation) error {
	value, err := json.Marshal(obs)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(observationBucket)).Put([]byte(obs.ID), value)
	})
}

func (c *Client) GetObservation(id string) (*models.Observation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrObservationNotFound.Fmt(id)
	}

	var value []byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(observationBucket)).Cursor()
		prefix := []byte(id)

		k, v := cur.Seek(prefix)
		if k == nil || !bytes.HasPrefix(k, prefix) {
			return ErrObservationNotFound.Fmt(id)
		}

		if !bytes.Equal(k, prefix) {
			if next, _ := cur.Next(); next != nil && bytes.HasPrefix(next, prefix) {
				return ErrAmbiguousID.Fmt(id)
			}
		}

		value = slices.Clone(v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	var obs models.Observation

	if err := json.Unmarshal(value, &obs); err != nil {
		return nil, err
	}

	return &obs, nil
}

func (c *Client) ListObservations(f Filter) ([]*models.Observation, error) {
	var result []*models.Observation

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(observationBucket)).ForEach(func(_, v []byte) error {
			var obs models.Observation

			if err := json.Unmarshal(v, &obs); err != nil {
				return err
			}

			if f.match(&obs) {
				result = append(result, &obs)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(result, func(a, b *models.Observation) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return result, nil
}

func (f Filter) match(obs *models.Observation) bool {
	if f.Student != "" && !strings.EqualFold(strings.TrimSpace(obs.Student), strings.TrimSpace(f.Student)) {
		return false
	}

	if !f.Since.IsZero() && obs.Timestamp.Before(f.Since) {
		return false
	}

	if !f.Until.IsZero() && obs.Timestamp.After(f.Until) {
		return false
	}

	return true
}

func (c *Client) DeleteObservations(ids []string) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(observationBucket))

		for _, id := range ids {
			if b.Get([]byte(id)) == nil {
				return ErrObservationNotFound.Fmt(id)
			}

			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) RecentStudents() ([]string, error) {
	var students []string

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(recentBucket)).Get(recentStudentsKey)
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &students)
	})

	return students, err
}

func (c *Client) AddRecentStudent(student string, limit int) error {
	student = strings.TrimSpace(student)
	if student == "" || limit <= 0 {
		return nil
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recentBucket))

		var students []string

		if v := b.Get(recentStudentsKey); v != nil {
			if err := json.Unmarshal(v, &students); err != nil {
				return err
			}
		}

		students = slices.DeleteFunc(students, func(s string) bool {
			return strings.EqualFold(s, student)
		})

		students = append([]string{student}, students...)

		if len(students) > limit {
			students = students[:limit]
		}

		value, err := json.Marshal(students)
		if err != nil {
			return err
		}

		return b.Put(recentStudentsKey, value)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errOntaskRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection. Stored observations
// are upgraded to the current version before it returns.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		DB:  db,
		now: time.Now,
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{observationBucket, recentBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
