package repository

import (
	"context"

	"github.com/arshraina/dining-reservation-system/internal/model"
)

// VenueStore is the venue registry.  Venues are immutable after
// Create and are never deleted.
type VenueStore interface {
	// Create registers a venue and fills in its generated ID and
	// CreatedAt.  Fails with ErrDuplicatePhone when the phone number
	// is taken.
	Create(ctx context.Context, v *model.Venue) error
	// GetByID fails with ErrVenueNotFound for unknown ids.
	GetByID(ctx context.Context, id uint64) (model.Venue, error)
	// Search matches venues whose name contains q (unanchored,
	// case-insensitive).  An empty query returns all venues.  Each
	// call runs a fresh query; results are ordered by id.
	Search(ctx context.Context, q string) ([]model.Venue, error)
}

// BookingStore is the authoritative ledger of accepted bookings.  It
// exclusively owns the booking collection; Insert is the only
// mutation entry point and is called solely by the coordinator.
type BookingStore interface {
	// Insert re-validates non-overlap against the current snapshot
	// and commits the booking atomically, filling in ID, Status and
	// CreatedAt.  Fails with ErrSlotConflict (and mutates nothing)
	// when any existing booking for the venue overlaps.  This second
	// check backs up the coordinator's availability check so a race
	// cannot slip through under a weaker caller.
	Insert(ctx context.Context, b *model.Booking) error
	// ListByVenue returns all bookings for a venue ascending by
	// start time.
	ListByVenue(ctx context.Context, venueID uint64) ([]model.Booking, error)
	// ListByUser returns all bookings made by a user ascending by
	// start time.
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// UserStore is the account boundary consumed by the auth handlers.
type UserStore interface {
	// Create hashes the password with bcrypt at the given cost and
	// stores the account.  Fails with ErrUsernameExists or
	// ErrEmailExists on duplicates.
	Create(ctx context.Context, username, email, password string, cost int) (uint64, error)
	// GetByUsername fails with ErrUserNotFound for unknown names.
	GetByUsername(ctx context.Context, username string) (model.User, error)
	// GetByID fails with ErrUserNotFound for unknown ids.
	GetByID(ctx context.Context, id uint64) (model.User, error)
}
