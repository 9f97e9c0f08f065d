package service

import (
	"errors"
	"fmt"
)

// Failure kinds of the booking core.  Every operation wraps one of these so
// callers can branch with errors.Is; handlers map them to HTTP statuses.
var (
	// ErrAuthRequired: the operation needs a signed-in user and none, or a
	// different one, is present.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNotFound: unknown showtime, session, booking, coupon or location.
	ErrNotFound = errors.New("not found")
	// ErrSeatConflict: a requested seat is already occupied.  The caller may
	// pick different seats and retry.
	ErrSeatConflict = errors.New("seats just taken")
	// ErrSessionInvalid: the group-pay session is expired or completed, or
	// the seat is not payable.
	ErrSessionInvalid = errors.New("group pay session invalid")
	// ErrValidation: malformed input or an unmet business rule.
	ErrValidation = errors.New("validation failed")
	// ErrCatalogIntegrity: static catalog data is inconsistent, e.g. a
	// theater references a missing layout.  Not recoverable by the caller.
	ErrCatalogIntegrity = errors.New("catalog integrity violation")
)

// ErrInvalidCredentials is returned by SignIn for an unknown email or a wrong
// password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthRequired)
