// Package common defines shared constants and sentinel errors used across
// TimeBank components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (missing/invalid credential, or verified identity with
	// no application profile row).
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorProfileNotFound = errors.New("user profile not found")
	ErrInvalidToken      = errors.New("invalid token")

	// Permission errors.
	ErrorForbidden = errors.New("not authorized")

	// Task lifecycle precondition errors.
	ErrorInvalidDuration     = errors.New("duration must be between 15-60 minutes")
	ErrorInvalidTaskType     = errors.New("task type must be offer or request")
	ErrorInsufficientCredits = errors.New("insufficient time credits")
	ErrorNoFields            = errors.New("no update data provided")
	ErrorNotAvailable        = errors.New("task is not available")
	ErrorSelfAssignment      = errors.New("cannot assign your own task")
	ErrorMissingEvidence     = errors.New("both before and after photos are required for validation")
	ErrorWrongStatus         = errors.New("task cannot be validated in its current status")
)
