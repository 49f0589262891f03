package lander

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a non-finite state vector.
	ErrInvalidState = errors.New("lander: invalid state (NaN or Inf detected)")

	// ErrDegeneratePosition indicates the lander is at the planet center,
	// where gravity is undefined.
	ErrDegeneratePosition = errors.New("lander: position at planet center")

	// ErrScenarioRange indicates a scenario index outside the catalogue.
	ErrScenarioRange = errors.New("lander: scenario index out of range")

	// ErrParameterBounds indicates a configuration value outside physical
	// sense (non-positive mass, non-positive time step, ...).
	ErrParameterBounds = errors.New("lander: parameter out of valid bounds")
)

// SimError wraps an error with the tick it occurred on.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
