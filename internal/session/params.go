package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ayoisaiah/ontask/internal/models"
)

// Params is everything the start form supplies for a new session.
type Params struct {
	Context  models.Context
	Observer string        `validate:"required"`
	Student  string        `validate:"required"`
	Status   models.Status `validate:"required,status"`
	Behavior string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})

	return v
}

// normalise trims the identifying fields so that blank values are caught by
// validation.
func (p Params) normalise() Params {
	p.Observer = strings.TrimSpace(p.Observer)
	p.Student = strings.TrimSpace(p.Student)
	p.Behavior = strings.TrimSpace(p.Behavior)

	return p
}

// Validate reports the first problem with p, if any.
func (p Params) Validate() error {
	err := validate.Struct(p.normalise())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrValidation.Fmt(err.Error())
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return ErrValidation.Fmt(field + " is required")
	case "status":
		return ErrValidation.Fmt(fmt.Sprintf("%q is not a valid status", fe.Value()))
	}

	return ErrValidation.Fmt(fe.Error())
}
