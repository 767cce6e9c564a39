package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotTrained is returned when detection runs without a loaded
	// model, or a vectorizer is used before Fit.
	ErrModelNotTrained = errors.New("model not trained")

	// ErrModelNotFound distinguishes "never trained" from a broken artifact.
	ErrModelNotFound = errors.New("model artifact not found")

	// ErrCorruptModel covers artifacts that exist but cannot be decoded or
	// are internally inconsistent.
	ErrCorruptModel = errors.New("model artifact corrupt")
)

// ValidationError rejects user input before any pipeline stage runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid input: " + e.Reason }

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FeatureMismatchError signals a feature vector whose dimensionality
// disagrees with the loaded model's schema. Such vectors are rejected,
// never truncated or padded.
type FeatureMismatchError struct {
	Want int
	Got  int
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("feature vector has %d slots, model expects %d", e.Got, e.Want)
}
