package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: malformed static parameters, caught at construction
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrTooFewOutcomes   = fmt.Errorf("%w: outcome count must be at least 2", ErrInvalidConfig)
	ErrNonPositiveSteps = fmt.Errorf("%w: step count must be positive", ErrInvalidConfig)
	ErrClipOutOfRange   = fmt.Errorf("%w: clip bound must lie in (0, 1)", ErrInvalidConfig)

	// Input errors: malformed per-call data
	ErrInvalidInput    = errors.New("invalid input")
	ErrShapeMismatch   = fmt.Errorf("%w: vector shapes do not match", ErrInvalidInput)
	ErrDrawOutOfRange  = fmt.Errorf("%w: draw outside outcome range", ErrInvalidInput)
	ErrNotDistribution = fmt.Errorf("%w: probabilities must be non-negative and sum to 1", ErrInvalidInput)

	// Numerical errors: bias vectors that break the probability law
	ErrInvalidBias  = errors.New("bias coefficients yield negative probability mass")
	ErrMassCollapse = errors.New("bias coefficients collapse the probability mass")
)

// Error constructors with context
func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, reason)
}

func NewInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

func NewShapeError(want, got int) error {
	return fmt.Errorf("%w: want length %d, got %d", ErrShapeMismatch, want, got)
}

func NewDrawRangeError(draw, nOutcomes int) error {
	return fmt.Errorf("%w: draw %d not in [0, %d)", ErrDrawOutOfRange, draw, nOutcomes)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsBiasError(err error) bool {
	return errors.Is(err, ErrInvalidBias) ||
		errors.Is(err, ErrMassCollapse)
}
