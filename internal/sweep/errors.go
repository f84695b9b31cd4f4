package sweep

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is wrapped by every configuration failure.
	ErrInvalidConfig = errors.New("sweep: invalid configuration")
	// ErrInvalidSweepCount indicates a negative ninit or a non-positive nsweeps.
	ErrInvalidSweepCount = errors.New("sweep: invalid sweep count")
	// ErrInvalidTemperatureGrid indicates an empty or non-increasing beta grid.
	ErrInvalidTemperatureGrid = errors.New("sweep: invalid temperature grid")
)

// ConfigError reports the offending field. It matches both ErrInvalidConfig
// and its specific cause under errors.Is.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %v", ErrInvalidConfig, e.Field, e.Value, e.Err)
}

// Unwrap exposes both the umbrella and the specific error.
func (e *ConfigError) Unwrap() []error { return []error{ErrInvalidConfig, e.Err} }

func invalid(field string, value any, cause error) error {
	return &ConfigError{Field: field, Value: value, Err: cause}
}
