// Package booking holds the availability engine and the transaction
// coordinator.  All accepted bookings go through Service.Book, which
// serializes the check-then-insert sequence per venue so that two
// concurrent requests for overlapping slots can never both commit.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/repository"
)

// ErrSlotUnavailable is returned by Book when the requested interval
// overlaps an accepted booking.  It is an ordinary, expected outcome;
// handlers translate it into HTTP 409.
var ErrSlotUnavailable = errors.New("slot is not available")

// Availability is the answer to a free/busy query.  NextAvailableSlot
// is only set when the first conflicting booking ends after the
// requested window; see scan for the exact rule.
type Availability struct {
	Available         bool
	NextAvailableSlot *time.Time
}

// CommitHook runs after a booking has been committed to the ledger.
// It must not block the request path; the caller decides whether to
// spawn a goroutine.
type CommitHook func(ctx context.Context, b model.Booking, v model.Venue)

// Service coordinates availability checks and bookings over the venue
// registry and the booking ledger.
type Service struct {
	venues   repository.VenueStore
	ledger   repository.BookingStore
	locks    *venueLocks
	onCommit CommitHook
}

// NewService wires a Service.  onCommit may be nil.
func NewService(venues repository.VenueStore, ledger repository.BookingStore, onCommit CommitHook) *Service {
	return &Service{
		venues:   venues,
		ledger:   ledger,
		locks:    newVenueLocks(),
		onCommit: onCommit,
	}
}

// CheckAvailability parses the raw timestamps and reports whether the
// venue is free for the interval.  It never mutates state.
func (s *Service) CheckAvailability(ctx context.Context, venueID uint64, rawStart, rawEnd string) (Availability, error) {
	slot, err := model.ParseInterval(rawStart, rawEnd)
	if err != nil {
		return Availability{}, err
	}
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return Availability{}, err
	}
	return s.scan(ctx, venueID, slot)
}

// scan walks the venue's bookings in ascending start order and stops
// at the first overlap.  The next available slot is reported only
// when that conflict ends after the requested end; earlier-ending
// conflicts leave it unset.  Because the ledger lists ascending by
// start, "first conflict" is always the earliest-starting one.
func (s *Service) scan(ctx context.Context, venueID uint64, slot model.Interval) (Availability, error) {
	existing, err := s.ledger.ListByVenue(ctx, venueID)
	if err != nil {
		return Availability{}, err
	}
	for _, b := range existing {
		if b.Slot.Overlaps(slot) {
			res := Availability{Available: false}
			if b.Slot.End.After(slot.End) {
				end := b.Slot.End
				res.NextAvailableSlot = &end
			}
			return res, nil
		}
	}
	return Availability{Available: true}, nil
}

// Book validates, then serializes check-then-insert for the venue.
//
//	validate -> venue lookup -> acquire venue lock -> availability
//	check -> ledger insert -> release
//
// Validation and the venue lookup fail before any lock is taken.  A
// caller that cancels while waiting for the lock abandons the attempt
// with no mutation.  The ledger's own overlap re-check backs this up,
// so even a second Service instance sharing the store cannot break
// the invariant.
func (s *Service) Book(ctx context.Context, venueID, userID uint64, rawStart, rawEnd string) (model.Booking, error) {
	slot, err := model.ParseInterval(rawStart, rawEnd)
	if err != nil {
		return model.Booking{}, err
	}
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return model.Booking{}, err
	}

	release, err := s.locks.acquire(ctx, venueID)
	if err != nil {
		return model.Booking{}, err
	}
	defer release()

	avail, err := s.scan(ctx, venueID, slot)
	if err != nil {
		return model.Booking{}, err
	}
	if !avail.Available {
		return model.Booking{}, ErrSlotUnavailable
	}

	b := model.Booking{UserID: userID, VenueID: venueID, Slot: slot}
	if err := s.ledger.Insert(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrSlotConflict) {
			return model.Booking{}, ErrSlotUnavailable
		}
		return model.Booking{}, err
	}

	if s.onCommit != nil {
		s.onCommit(ctx, b, venue)
	}
	return b, nil
}
