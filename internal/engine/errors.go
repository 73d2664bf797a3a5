package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the hard failure kinds. Interface implementations are
// expected to wrap these so callers can classify with errors.Is.
var (
	// ErrHandlerFailed indicates an actuator command or read failed at the
	// hardware boundary. No local recovery; timing bookkeeping is untouched.
	ErrHandlerFailed = errors.New("handler failed")
	// ErrMeasurementFailed indicates an external measurement source failed.
	// Raised by measurement providers, not by the engine itself.
	ErrMeasurementFailed = errors.New("measurement failed")
)

// ConstraintKind classifies a timing-guard refusal.
type ConstraintKind uint8

const (
	// MinRunTime: the actuator has not been on long enough to be stopped.
	MinRunTime ConstraintKind = iota
	// MinOffTime: the actuator has not been off long enough to be started.
	MinOffTime
	// MaxRunTime is declared for a future forced-shutoff check; no code path
	// raises it today.
	MaxRunTime
)

func (k ConstraintKind) String() string {
	switch k {
	case MinRunTime:
		return "minimum run time not met"
	case MinOffTime:
		return "minimum off time not met"
	case MaxRunTime:
		return "maximum run time exceeded"
	default:
		return "unknown constraint"
	}
}

// ConstraintError is a soft, recoverable refusal from the timing guard. The
// caller should retry the same desired outcome on a later tick; no state
// changed.
type ConstraintError struct {
	Actuator Actuator
	Kind     ConstraintKind
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Actuator, e.Kind)
}

// IsConstraint reports whether err is (or wraps) a timing-constraint refusal.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// ConfigError reports a rejected configuration value. Setters return it
// instead of silently clamping.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %.2f: %s", e.Field, e.Value, e.Reason)
}
