package session

import (
	"github.com/ayoisaiah/ontask/internal/apperr"
	"github.com/ayoisaiah/ontask/internal/episode"
	"github.com/ayoisaiah/ontask/internal/reconcile"
)

var (
	ErrValidation = &apperr.Error{
		Message: "cannot start observation: %s",
	}

	ErrInvalidPhase = &apperr.Error{
		Message: "cannot %s while the session is %s",
	}

	ErrSaveFailed = &apperr.Error{
		Message: "saving observation failed",
	}

	ErrDuplicateStatus    = episode.ErrDuplicateStatus
	ErrEpisodeInProgress  = episode.ErrEpisodeInProgress
	ErrNoActiveEpisode    = episode.ErrNoActiveEpisode
	ErrZeroDuration       = episode.ErrZeroDuration
	ErrInvariantViolation = reconcile.ErrInvariantViolation
)
