package store

import "github.com/ayoisaiah/ontask/internal/apperr"

var (
	errOntaskRunning = &apperr.Error{
		Message: "is ontask already running? Only one instance can be active at a time",
	}

	ErrObservationNotFound = &apperr.Error{
		Message: "observation not found: %s",
	}

	ErrAmbiguousID = &apperr.Error{
		Message: "%q matches more than one observation",
	}

	errUnknownVersion = &apperr.Error{
		Message: "observation version %d is newer than this version of ontask supports (%d)",
	}

	errMigration = &apperr.Error{
		Message: "upgrading observation %s failed",
	}
)
