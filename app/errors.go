package app

import "github.com/ayoisaiah/ontask/internal/apperr"

var (
	errNothingToEdit = &apperr.Error{
		Message: "nothing to edit: pass at least one field flag (see ontask edit --help)",
	}

	errInvalidEffectiveness = &apperr.Error{
		Message: "invalid effectiveness %q for prompt %q (expected effective, partially-effective or ineffective)",
	}

	errEmptyField = &apperr.Error{
		Message: "%s cannot be empty",
	}

	errMissingID = &apperr.Error{
		Message: "missing observation id",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level: %s",
	}
)
