// Package apperr defines the error taxonomy shared by the store, service
// and API layers. Handlers map these sentinels to HTTP status codes with
// errors.Is; anything unrecognized surfaces as an internal error.
package apperr

import "errors"

var (
	// ErrValidation marks a missing or malformed required field
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a double-booked pet or a clashing vet time slot
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an unknown booking or pet id
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation the current record state does not allow
	ErrForbidden = errors.New("forbidden")
)
