package model

import "time"

// Booking statuses.  Cancellation is not supported; the status column
// exists so a terminal CANCELLED state can be added without a schema
// change.
const BookingStatusConfirmed = "CONFIRMED"

// Booking records an accepted reservation of a venue for a half-open
// time slot.  For any fixed venue the set of booking slots is pairwise
// non-overlapping at all times; the ledger enforces this on insert and
// the coordinator serializes the check-then-insert sequence.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who booked, opaque reference to the account store.
//  VenueID   – venue being reserved.
//  Slot      – reserved [start, end) interval, UTC.
//  Status    – booking state, currently always CONFIRMED.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64
	UserID    uint64
	VenueID   uint64
	Slot      Interval
	Status    string
	CreatedAt time.Time
}
