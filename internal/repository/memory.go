package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/utils"
)

// In-memory implementations of the store interfaces.  They back the
// test suite and STORE=memory runs; semantics mirror the MySQL repos
// (same sentinel errors, same ordering guarantees).

// MemoryVenueStore keeps venues in process, guarded by a RWMutex.
type MemoryVenueStore struct {
	mu     sync.RWMutex
	byID   map[uint64]model.Venue
	phones map[string]struct{}
	nextID uint64
}

// NewMemoryVenueStore returns an empty in-memory venue registry.
func NewMemoryVenueStore() *MemoryVenueStore {
	return &MemoryVenueStore{
		byID:   make(map[uint64]model.Venue),
		phones: make(map[string]struct{}),
	}
}

func (s *MemoryVenueStore) Create(_ context.Context, v *model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.phones[v.Phone]; taken {
		return ErrDuplicatePhone
	}
	s.nextID++
	v.ID = s.nextID
	v.CreatedAt = time.Now().UTC()
	s.phones[v.Phone] = struct{}{}
	s.byID[v.ID] = *v
	return nil
}

func (s *MemoryVenueStore) GetByID(_ context.Context, id uint64) (model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[id]
	if !ok {
		return model.Venue{}, ErrVenueNotFound
	}
	return v, nil
}

func (s *MemoryVenueStore) Search(_ context.Context, q string) ([]model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(q)
	out := []model.Venue{}
	for _, v := range s.byID {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryBookingStore keeps bookings per venue, sorted ascending by
// start time so scans are deterministic.
type MemoryBookingStore struct {
	mu      sync.RWMutex
	byVenue map[uint64][]model.Booking
	nextID  uint64
}

// NewMemoryBookingStore returns an empty in-memory ledger.
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{byVenue: make(map[uint64][]model.Booking)}
}

// Insert checks the overlap invariant and commits under one lock, so
// it is all-or-nothing even without the coordinator.
func (s *MemoryBookingStore) Insert(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.byVenue[b.VenueID]
	for _, e := range existing {
		if e.Slot.Overlaps(b.Slot) {
			return ErrSlotConflict
		}
	}
	s.nextID++
	b.ID = s.nextID
	b.Status = model.BookingStatusConfirmed
	b.CreatedAt = time.Now().UTC()
	// Keep the slice sorted by start time.
	i := sort.Search(len(existing), func(i int) bool {
		return existing[i].Slot.Start.After(b.Slot.Start)
	})
	existing = append(existing, model.Booking{})
	copy(existing[i+1:], existing[i:])
	existing[i] = *b
	s.byVenue[b.VenueID] = existing
	return nil
}

func (s *MemoryBookingStore) ListByVenue(_ context.Context, venueID uint64) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.byVenue[venueID]))
	copy(out, s.byVenue[venueID])
	return out, nil
}

func (s *MemoryBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Booking{}
	for _, bs := range s.byVenue {
		for _, b := range bs {
			if b.UserID == userID {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Start.Before(out[j].Slot.Start) })
	return out, nil
}

// MemoryUserStore keeps accounts in process.
type MemoryUserStore struct {
	mu         sync.RWMutex
	byID       map[uint64]model.User
	byUsername map[string]uint64
	emails     map[string]struct{}
	nextID     uint64
}

// NewMemoryUserStore returns an empty in-memory account store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[uint64]model.User),
		byUsername: make(map[string]uint64),
		emails:     make(map[string]struct{}),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[username]; taken {
		return 0, ErrUsernameExists
	}
	if _, taken := s.emails[email]; taken {
		return 0, ErrEmailExists
	}
	s.nextID++
	u := model.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byID[u.ID] = u
	s.byUsername[username] = u.ID
	s.emails[email] = struct{}{}
	return u.ID, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[strings.TrimSpace(username)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}
