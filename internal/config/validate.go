package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// keyFor maps a validated struct field to its key in the config file.
var keyFor = map[string]string{
	"Config.Settings.DriftTolerance": keyDriftTolerance,
	"Config.Settings.RecentStudents": keyRecentStudents,
	"Config.Log.Level":               keyLogLevel,
	"Config.Log.MaxSize":             keyLogMaxSize,
	"Config.Log.MaxBackups":          keyLogMaxBackups,
}

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]

	key, ok := keyFor[fe.Namespace()]
	if !ok {
		key = fe.Namespace()
	}

	return errInvalidSetting.Fmt(key, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	}

	return fe.Error()
}
