package episode

import "github.com/ayoisaiah/ontask/internal/apperr"

var (
	ErrDuplicateStatus = &apperr.Error{
		Message: "an episode cannot have the primary status of the session (%s)",
	}

	ErrEpisodeInProgress = &apperr.Error{
		Message: "an episode is already in progress: end or cancel it first",
	}

	ErrNoActiveEpisode = &apperr.Error{
		Message: "no episode is in progress",
	}

	ErrZeroDuration = &apperr.Error{
		Message: "duration must be greater than zero seconds",
	}

	ErrInvalidStatus = &apperr.Error{
		Message: "unknown status: %q",
	}
)
