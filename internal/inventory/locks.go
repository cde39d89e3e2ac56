package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
)

// LockManager hands out exclusive per-seat locks. A lock is a one-slot
// channel: sending into it acquires, receiving from it releases. Lock entries
// are created on first use and never depend on the seat record.
type LockManager struct {
	mu    sync.Mutex
	locks map[domain.SeatKey]chan struct{}
}

type LockHandle struct {
	key      domain.SeatKey
	token    chan struct{}
	released atomic.Bool
}

func (h *LockHandle) Key() domain.SeatKey {
	return h.key
}

func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[domain.SeatKey]chan struct{}),
	}
}

// Acquire blocks until the seat's lock is free, the timeout elapses or ctx is
// done. A non-positive timeout makes it a try-lock.
func (m *LockManager) Acquire(ctx context.Context, showID, seatID string, timeout time.Duration) (*LockHandle, error) {
	key := domain.SeatKey{ShowID: showID, SeatID: seatID}

	if timeout <= 0 {
		return m.tryAcquire(ctx, key)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return m.acquire(ctx, key)
}

// AcquireAll locks every given seat in canonical order under one deadline.
// Either all locks are returned, or none are held when it returns an error.
func (m *LockManager) AcquireAll(
	ctx context.Context,
	showID string,
	seatIDs []string,
	timeout time.Duration) ([]*LockHandle, error) {

	ordered := CanonicalOrder(seatIDs)
	handles := make([]*LockHandle, 0, len(ordered))

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	for _, seatID := range ordered {
		key := domain.SeatKey{ShowID: showID, SeatID: seatID}

		var (
			handle *LockHandle
			err    error
		)

		if timeout > 0 {
			handle, err = m.acquire(ctx, key)
		} else {
			handle, err = m.tryAcquire(ctx, key)
		}

		if err != nil {
			m.ReleaseAll(handles)
			return nil, err
		}

		handles = append(handles, handle)
	}

	return handles, nil
}

// Release frees the lock. Releasing a handle twice is a no-op.
func (m *LockManager) Release(handle *LockHandle) {
	if handle == nil {
		return
	}

	if handle.released.CompareAndSwap(false, true) {
		<-handle.token
	}
}

// ReleaseAll releases the handles in reverse acquisition order.
func (m *LockManager) ReleaseAll(handles []*LockHandle) {
	for i := len(handles) - 1; i >= 0; i-- {
		m.Release(handles[i])
	}
}

// Forget drops the lock entries of a show. Only call it once no transaction
// can touch the show any more.
func (m *LockManager) Forget(showID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.locks {
		if key.ShowID == showID {
			delete(m.locks, key)
		}
	}
}

func (m *LockManager) acquire(ctx context.Context, key domain.SeatKey) (*LockHandle, error) {
	token := m.lockFor(key)

	select {
	case token <- struct{}{}:
		return &LockHandle{key: key, token: token}, nil
	default:
	}

	select {
	case token <- struct{}{}:
		return &LockHandle{key: key, token: token}, nil
	case <-ctx.Done():
		return nil, acquireError(ctx.Err(), key)
	}
}

func (m *LockManager) tryAcquire(ctx context.Context, key domain.SeatKey) (*LockHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, acquireError(err, key)
	}

	token := m.lockFor(key)

	select {
	case token <- struct{}{}:
		return &LockHandle{key: key, token: token}, nil
	default:
		return nil, &domain.LockTimeoutError{ShowID: key.ShowID, SeatID: key.SeatID}
	}
}

func (m *LockManager) lockFor(key domain.SeatKey) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.locks[key]
	if !ok {
		token = make(chan struct{}, 1)
		m.locks[key] = token
	}

	return token
}

func acquireError(err error, key domain.SeatKey) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.LockTimeoutError{ShowID: key.ShowID, SeatID: key.SeatID}
	}

	return fmt.Errorf("acquire lock on seat %s of show %s: %w", key.SeatID, key.ShowID, err)
}

// CanonicalOrder returns the distinct seat ids sorted lexicographically. All
// multi-seat lock acquisitions go through this order so that two
// transactions with overlapping seats can never wait on each other in a cycle.
func CanonicalOrder(seatIDs []string) []string {
	ordered := slices.Clone(seatIDs)
	slices.Sort(ordered)

	return slices.Compact(ordered)
}
