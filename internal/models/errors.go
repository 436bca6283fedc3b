// ABOUTME: Error conditions shared by storage, the tracker façade, and transports
// ABOUTME: Callers match them with errors.Is after wrapping
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a rejected request (bad enum, bad date, empty names, ...)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoUpdates is returned for a patch with no fields present
	ErrNoUpdates = fmt.Errorf("%w: no updates provided", ErrInvalidInput)

	// ErrNotFound is returned when a write targets a row that does not exist.
	// Reads never return it; a missing row reads as nil.
	ErrNotFound = errors.New("not found")

	// ErrReferentialViolation is returned when the store rejects a write
	// that references a missing user or goal
	ErrReferentialViolation = errors.New("referential violation")
)

// invalidf builds an ErrInvalidInput with a formatted reason
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
