package booking

import (
	"context"
	"sync"
	"sync/atomic"
)

// venueLocks hands out one exclusive slot per venue.  A buffered
// channel of capacity one acts as the mutex: the runtime queues
// blocked senders in FIFO order, so waiters for a busy venue are
// served in arrival order and none starves.  Acquisition can be
// abandoned through the context, in which case no slot is held and no
// mutation has happened.
type venueLocks struct {
	mu       sync.Mutex
	locks    map[uint64]chan struct{}
	acquired atomic.Int64
}

func newVenueLocks() *venueLocks {
	return &venueLocks{locks: make(map[uint64]chan struct{})}
}

func (l *venueLocks) slot(venueID uint64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[venueID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[venueID] = ch
	}
	return ch
}

// acquire blocks until the venue's slot is free or ctx is done.  The
// returned release function must be called exactly once.  Locks for
// different venues never contend.
func (l *venueLocks) acquire(ctx context.Context, venueID uint64) (release func(), err error) {
	ch := l.slot(venueID)
	select {
	case ch <- struct{}{}:
		l.acquired.Add(1)
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// acquisitions reports how many locks have been taken since startup.
func (l *venueLocks) acquisitions() int64 { return l.acquired.Load() }
