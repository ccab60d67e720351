package core

import (
	"errors"
	"fmt"
)

// ValidationError reports a request that cannot be evaluated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches any ValidationError with the same field and message.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if !errors.As(target, &other) {
		return false
	}
	return e.Field == other.Field && e.Message == other.Message
}

// ErrNoRecognizedSpecies is returned when no selection entry names a catalog species.
var ErrNoRecognizedSpecies = &ValidationError{Field: "selection", Message: "no recognized species selected"}

// ErrEmptyRanges is returned by ComputeRangeOverlap when called without ranges.
var ErrEmptyRanges = errors.New("range overlap requires at least one range")
