package timer

import "github.com/ayoisaiah/ontask/internal/apperr"

var errEmptyPrompt = &apperr.Error{
	Message: "a prompt needs a type",
}
