package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/ontask/internal/models"
)

// CurrentVersion is the version of newly saved observations.
//
//	0: context.who was a single string and the behavior lived in the context
//	1: episodes had no end time
//	2: current
const CurrentVersion = 2

// Upgrade decodes a stored observation of any known version into the
// current shape.
func Upgrade(raw []byte) (*models.Observation, error) {
	var probe struct {
		Version int `json:"version"`
	}

	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	if probe.Version > CurrentVersion {
		return nil, errUnknownVersion.Fmt(probe.Version, CurrentVersion)
	}

	if probe.Version < 1 {
		var err error

		raw, err = upgradeV0(raw)
		if err != nil {
			return nil, err
		}
	}

	var obs models.Observation

	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, err
	}

	if probe.Version < 2 {
		upgradeV1(&obs)
	}

	obs.Version = CurrentVersion

	return &obs, nil
}

// upgradeV0 turns the single "who" string into a list and lifts the behavior
// out of the context.
func upgradeV0(raw []byte) ([]byte, error) {
	var m map[string]any

	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	ctx, _ := m["context"].(map[string]any)
	if ctx == nil {
		return raw, nil
	}

	if who, ok := ctx["who"].(string); ok {
		if who == "" {
			ctx["who"] = []string{}
		} else {
			ctx["who"] = []string{who}
		}
	}

	if behavior, ok := ctx["behavior"].(string); ok {
		if b, _ := m["behavior"].(string); b == "" {
			m["behavior"] = behavior
		}

		delete(ctx, "behavior")
	}

	return json.Marshal(m)
}

// upgradeV1 derives missing episode end times from their durations.
func upgradeV1(obs *models.Observation) {
	for i := range obs.Episodes {
		ep := &obs.Episodes[i]

		if ep.EndTime.IsZero() && !ep.StartTime.IsZero() {
			ep.EndTime = ep.StartTime.Add(time.Duration(ep.Duration) * time.Second)
		}
	}
}

func schemaVersion(tx *bolt.Tx) int {
	v := tx.Bucket([]byte(metaBucket)).Get(schemaVersionKey)
	if len(v) != 8 {
		return 0
	}

	return int(binary.BigEndian.Uint64(v))
}

// migrate rewrites every outdated observation in the current shape. It is a
// no-op once the database records the current schema version.
func (c *Client) migrate(tx *bolt.Tx) error {
	if schemaVersion(tx) >= CurrentVersion {
		return nil
	}

	bucket := tx.Bucket([]byte(observationBucket))

	updated := make(map[string][]byte)

	err := bucket.ForEach(func(k, v []byte) error {
		obs, err := Upgrade(v)
		if err != nil {
			return errMigration.Fmt(string(k)).Wrap(err)
		}

		value, err := json.Marshal(obs)
		if err != nil {
			return err
		}

		updated[string(k)] = value

		return nil
	})
	if err != nil {
		return err
	}

	for k, v := range updated {
		if err := bucket.Put([]byte(k), v); err != nil {
			return err
		}
	}

	version := make([]byte, 8)
	binary.BigEndian.PutUint64(version, uint64(CurrentVersion))

	return tx.Bucket([]byte(metaBucket)).Put(schemaVersionKey, version)
}
