package booking

import (
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
)

// ledger records bookings and pending holds. Changes to a booking's status or
// to a hold's seats are only made while the seat locks of that booking or
// hold are held; the mutex just keeps the maps themselves consistent.
type ledger struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	holds    map[string]*pendingHold
}

func newLedger() *ledger {
	return &ledger{
		bookings: make(map[string]*domain.Booking),
		holds:    make(map[string]*pendingHold),
	}
}

func (l *ledger) addBooking(b domain.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored := b.Clone()
	l.bookings[b.ID] = &stored
}

func (l *ledger) booking(id string) (domain.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.bookings[id]
	if !ok {
		return domain.Booking{}, false
	}

	return b.Clone(), true
}

// markCancelled flips a CONFIRMED booking to CANCELLED. It reports false when
// the booking is unknown or was already cancelled.
func (l *ledger) markCancelled(id string, at time.Time) (domain.Booking, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bookings[id]
	if !ok || b.Status != domain.BookingConfirmed {
		return domain.Booking{}, false
	}

	b.Status = domain.BookingCancelled
	b.CancelledAt = &at

	return b.Clone(), true
}

func (l *ledger) addHold(h domain.SeatHold) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.holds[h.ID] = &pendingHold{hold: h.Clone()}
}

func (l *ledger) hold(id string) (pendingHold, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.holds[id]
	if !ok {
		return pendingHold{}, false
	}

	return p.clone(), true
}

func (l *ledger) removeHold(id string) (domain.SeatHold, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.holds[id]
	if !ok {
		return domain.SeatHold{}, false
	}

	delete(l.holds, id)

	return p.hold.Clone(), true
}

// markReclaimed records that the supervisor took a seat back from its hold.
// Once every seat of the hold is gone the hold is removed and returned with
// retired set to true.
func (l *ledger) markReclaimed(holdID, seatID string) (hold domain.SeatHold, retired bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.holds[holdID]
	if !ok || !slices.Contains(p.hold.SeatIDs, seatID) || slices.Contains(p.reclaimed, seatID) {
		return domain.SeatHold{}, false
	}

	p.reclaimed = append(p.reclaimed, seatID)
	if len(p.reclaimed) < len(p.hold.SeatIDs) {
		return domain.SeatHold{}, false
	}

	delete(l.holds, holdID)

	return p.hold.Clone(), true
}

type pendingHold struct {
	hold      domain.SeatHold
	reclaimed []string
}

func (p *pendingHold) clone() pendingHold {
	return pendingHold{
		hold:      p.hold.Clone(),
		reclaimed: slices.Clone(p.reclaimed),
	}
}
