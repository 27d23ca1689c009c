// Package repository defines the storage interfaces for venues, users
// and bookings, plus sentinel errors shared by all implementations.
// Handlers use errors.Is against these values to pick status codes, so
// both the MySQL and the in-memory stores must return them instead of
// driver-specific errors.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue lookup by id matches no
// row.  Handlers translate this into HTTP 404.
var ErrVenueNotFound = errors.New("venue not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatePhone is returned when creating a venue whose phone
// number is already registered.  Handlers translate this into 409.
var ErrDuplicatePhone = errors.New("phone number already registered")

// ErrUsernameExists and ErrEmailExists signal account duplicates on
// signup.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// ErrSlotConflict is returned by the ledger when an insert would
// overlap an existing booking for the same venue.  The insert performs
// no mutation in that case.  Conflicts are an expected outcome, not a
// fault; the coordinator maps them to its own unavailable error.
var ErrSlotConflict = errors.New("slot conflicts with an existing booking")
