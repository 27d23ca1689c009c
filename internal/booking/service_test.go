package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/repository"
)

func newTestService(t *testing.T) (*Service, uint64) {
	t.Helper()
	venues := repository.NewMemoryVenueStore()
	ledger := repository.NewMemoryBookingStore()
	v := &model.Venue{
		Name:      "Trattoria Verde",
		Address:   "1 Olive Lane",
		Phone:     "5552000001",
		OpenTime:  "09:00:00",
		CloseTime: "22:00:00",
	}
	require.NoError(t, venues.Create(context.Background(), v))
	return NewService(venues, ledger, nil), v.ID
}

func TestCheckAvailabilityEmptyLedger(t *testing.T) {
	svc, venueID := newTestService(t)

	got, err := svc.CheckAvailability(context.Background(), venueID,
		"2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Nil(t, got.NextAvailableSlot)
}

func TestCheckAvailabilityUnknownVenue(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CheckAvailability(context.Background(), 9999,
		"2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
}

func TestCheckAvailabilityIsIdempotent(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)

	first, err := svc.CheckAvailability(ctx, venueID, "2025-03-01T10:30:00Z", "2025-03-01T11:30:00Z")
	require.NoError(t, err)
	second, err := svc.CheckAvailability(ctx, venueID, "2025-03-01T10:30:00Z", "2025-03-01T11:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	all, err := svc.ledger.ListByVenue(ctx, venueID)
	require.NoError(t, err)
	assert.Len(t, all, 1, "availability checks must not mutate the ledger")
}

// The engine stops at the first conflicting booking in ascending start
// order and only reports its end as the next slot when that end lies
// beyond the requested window.
func TestNextAvailableSlotFirstConflictRule(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)

	t.Run("conflict ends inside requested window", func(t *testing.T) {
		got, err := svc.CheckAvailability(ctx, venueID, "2025-03-01T10:30:00Z", "2025-03-01T11:30:00Z")
		require.NoError(t, err)
		assert.False(t, got.Available)
		assert.Nil(t, got.NextAvailableSlot, "conflict end 11:00 is not after requested end 11:30")
	})

	t.Run("conflict ends after requested window", func(t *testing.T) {
		got, err := svc.CheckAvailability(ctx, venueID, "2025-03-01T10:15:00Z", "2025-03-01T10:45:00Z")
		require.NoError(t, err)
		assert.False(t, got.Available)
		require.NotNil(t, got.NextAvailableSlot)
		assert.Equal(t, "2025-03-01T11:00:00Z", got.NextAvailableSlot.Format(time.RFC3339))
	})
}

func TestBookThenOverlapRejected(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	b, err := svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)

	_, err = svc.Book(ctx, venueID, 2, "2025-03-01T10:30:00Z", "2025-03-01T11:30:00Z")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookAdjacentSlots(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)

	// Half-open semantics: [11:00, 12:00) touches but does not overlap.
	_, err = svc.Book(ctx, venueID, 2, "2025-03-01T11:00:00Z", "2025-03-01T12:00:00Z")
	require.NoError(t, err)
}

func TestBookUnknownVenue(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), 9999, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
	assert.Zero(t, svc.locks.acquisitions(), "venue lookup must fail before any lock is taken")
}

func TestBookMalformedTimestampTakesNoLock(t *testing.T) {
	svc, venueID := newTestService(t)

	_, err := svc.Book(context.Background(), venueID, 1, "not-a-date", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
	assert.Zero(t, svc.locks.acquisitions(), "validation must fail before any lock is taken")

	_, err = svc.Book(context.Background(), venueID, 1, "2025-03-01T12:00:00Z", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, model.ErrInvalidRange)
	assert.Zero(t, svc.locks.acquisitions())
}

// N workers race for mutually overlapping slots at one venue; exactly
// one commit must survive.
func TestConcurrentOverlappingBookings(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(ctx, venueID, uint64(i+1),
				"2025-03-01T19:00:00Z", "2025-03-01T21:00:00Z")
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, committed)

	all, err := svc.ledger.ListByVenue(ctx, venueID)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

// The pairwise non-overlap invariant must hold after a randomized
// concurrent mix of distinct and clashing slots.
func TestLedgerInvariantUnderConcurrency(t *testing.T) {
	svc, venueID := newTestService(t)
	ctx := context.Background()

	starts := []string{
		"2025-03-01T10:00:00Z", "2025-03-01T10:30:00Z", "2025-03-01T11:00:00Z",
		"2025-03-01T11:30:00Z", "2025-03-01T12:00:00Z", "2025-03-01T12:30:00Z",
	}
	var wg sync.WaitGroup
	for i, s := range starts {
		wg.Add(1)
		go func(userID uint64, start string) {
			defer wg.Done()
			st, _ := time.Parse(time.RFC3339, start)
			end := st.Add(time.Hour).Format(time.RFC3339)
			_, _ = svc.Book(ctx, venueID, userID, start, end)
		}(uint64(i+1), s)
	}
	wg.Wait()

	all, err := svc.ledger.ListByVenue(ctx, venueID)
	require.NoError(t, err)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			assert.False(t, all[i].Slot.Overlaps(all[j].Slot),
				"bookings %d and %d overlap", all[i].ID, all[j].ID)
		}
	}
}

func TestCrossVenueBookingsDoNotContend(t *testing.T) {
	venues := repository.NewMemoryVenueStore()
	ledger := repository.NewMemoryBookingStore()
	ctx := context.Background()

	a := &model.Venue{Name: "A", Address: "1", Phone: "5553000001", OpenTime: "09:00:00", CloseTime: "22:00:00"}
	b := &model.Venue{Name: "B", Address: "2", Phone: "5553000002", OpenTime: "09:00:00", CloseTime: "22:00:00"}
	require.NoError(t, venues.Create(ctx, a))
	require.NoError(t, venues.Create(ctx, b))
	svc := NewService(venues, ledger, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint64{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, venueID uint64) {
			defer wg.Done()
			_, errs[i] = svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
		}(i, id)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func TestAbandonedWaitLeavesNoMutation(t *testing.T) {
	svc, venueID := newTestService(t)

	// Hold the venue's lock so the booking attempt has to wait.
	release, err := svc.locks.acquire(context.Background(), venueID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = svc.Book(ctx, venueID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	all, err := svc.ledger.ListByVenue(context.Background(), venueID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommitHookRunsAfterCommit(t *testing.T) {
	venues := repository.NewMemoryVenueStore()
	ledger := repository.NewMemoryBookingStore()
	ctx := context.Background()

	v := &model.Venue{Name: "Hooked", Address: "3", Phone: "5554000001", OpenTime: "09:00:00", CloseTime: "22:00:00"}
	require.NoError(t, venues.Create(ctx, v))

	var got []model.Booking
	svc := NewService(venues, ledger, func(_ context.Context, b model.Booking, venue model.Venue) {
		assert.Equal(t, v.Name, venue.Name)
		got = append(got, b)
	})

	_, err := svc.Book(ctx, v.ID, 1, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.Book(ctx, v.ID, 2, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, got, 1, "rejected bookings must not fire the hook")
}
