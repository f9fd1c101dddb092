package config

import "github.com/ayoisaiah/ontask/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidSetting = &apperr.Error{
		Message: "%s: %s",
	}

	errInvalidStatus = &apperr.Error{
		Message: "unknown status %q (expected on-task, off-task or transitioning)",
	}

	errInvalidSince = &apperr.Error{
		Message: "could not understand --since %q",
	}

	errInvalidUntil = &apperr.Error{
		Message: "could not understand --until %q",
	}
)
