package publish

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidConfig is the only error raised locally by the publisher. It is
// always returned before any remote call is made.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError describes one invalid setting.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s %q: %s", ErrInvalidConfig, e.Field, e.Value, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// configErrors converts validation errors into ConfigErrors ordered by field.
func configErrors(errs validation.Errors, values map[string]string) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]error, 0, len(fields))
	for _, field := range fields {
		out = append(out, &ConfigError{
			Field:   field,
			Value:   values[field],
			Message: errs[field].Error(),
		})
	}
	return errors.Join(out...)
}
