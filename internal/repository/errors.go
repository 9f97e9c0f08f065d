// Package repository holds the in-memory stores that back the booking core
// and the optional MySQL archive.  The sentinel values below let services
// and handlers tell failure scenarios apart with errors.Is.
package repository

import "errors"

// ErrNotFound is returned when a lookup by identifier finds nothing.
var ErrNotFound = errors.New("not found")

// ErrLayoutNotFound is returned when a theater references a layout that is
// not in the catalog.  It indicates broken static data, not a user error.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as reserving a seat that is already occupied.
// Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrAlreadyExists is returned when an identifier is inserted twice.
var ErrAlreadyExists = errors.New("already exists")
