// Package inventory holds the authoritative in-memory seat state of every
// allocated show together with the per-seat locks that serialize changes to
// it and the supervisor that reclaims expired seat holds.
package inventory

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
)

// SeatStore keeps seat records per show and offers compare-and-set state
// transitions. Callers must hold the seat's lock from LockManager before
// calling Transition; the store only guards against inconsistent transitions.
type SeatStore struct {
	mu    sync.RWMutex
	shows map[string]*showSeats
}

type showSeats struct {
	mu    sync.RWMutex
	show  domain.Show
	seats map[string]*domain.Seat
	// seat ids in canonical order
	order []string
}

func NewSeatStore() *SeatStore {
	return &SeatStore{
		shows: make(map[string]*showSeats),
	}
}

// AllocateShow registers the show and its seats. Every seat starts AVAILABLE.
func (s *SeatStore) AllocateShow(inventory domain.ShowInventory) error {
	return s.AllocateShowWithBookings(inventory, nil)
}

// AllocateShowWithBookings registers the show with the seats in booked
// (seat id to booking id) already BOOKED. The show becomes visible with its
// final seat states, so no caller can observe a booked seat as AVAILABLE.
func (s *SeatStore) AllocateShowWithBookings(inventory domain.ShowInventory, booked map[string]string) error {
	showID := inventory.Show.ID
	if showID == "" {
		return fmt.Errorf("%w: show id is required", domain.ErrInvalidRequest)
	}

	if len(inventory.Seats) == 0 {
		return fmt.Errorf("%w: show %s has no seats", domain.ErrInvalidRequest, showID)
	}

	entry := &showSeats{
		show:  inventory.Show,
		seats: make(map[string]*domain.Seat, len(inventory.Seats)),
		order: make([]string, 0, len(inventory.Seats)),
	}

	for _, seat := range inventory.Seats {
		if seat.ID == "" {
			return fmt.Errorf("%w: show %s has a seat without id", domain.ErrInvalidRequest, showID)
		}

		if _, exists := entry.seats[seat.ID]; exists {
			return fmt.Errorf("%w: duplicate seat %s in show %s", domain.ErrInvalidRequest, seat.ID, showID)
		}

		entry.seats[seat.ID] = &domain.Seat{
			ID:         seat.ID,
			ShowID:     showID,
			Category:   seat.Category,
			ExtraPrice: seat.ExtraPrice,
			State:      domain.SeatAvailable,
		}
		entry.order = append(entry.order, seat.ID)
	}

	for seatID, bookingID := range booked {
		seat, ok := entry.seats[seatID]
		if !ok {
			return fmt.Errorf("%w: booked seat %s is not part of show %s", domain.ErrInvalidRequest, seatID, showID)
		}
		if bookingID == "" {
			return fmt.Errorf("%w: booked seat %s has no booking id", domain.ErrInvalidRequest, seatID)
		}

		seat.State = domain.SeatBooked
		seat.Holder = bookingID
	}

	slices.Sort(entry.order)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shows[showID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrShowAlreadyAllocated, showID)
	}

	s.shows[showID] = entry

	return nil
}

func (s *SeatStore) Show(showID string) (domain.Show, error) {
	entry, err := s.lookup(showID)
	if err != nil {
		return domain.Show{}, err
	}

	return entry.show, nil
}

func (s *SeatStore) GetState(showID, seatID string) (domain.SeatState, error) {
	seat, err := s.Seat(showID, seatID)
	if err != nil {
		return "", err
	}

	return seat.State, nil
}

// Seat returns a snapshot of the seat record.
func (s *SeatStore) Seat(showID, seatID string) (domain.Seat, error) {
	entry, err := s.lookup(showID)
	if err != nil {
		return domain.Seat{}, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	seat, ok := entry.seats[seatID]
	if !ok {
		return domain.Seat{}, fmt.Errorf("seat %s of show %s: %w", seatID, showID, domain.ErrRecordNotFound)
	}

	return *seat, nil
}

// Seats returns snapshots of the given seats in the order requested.
func (s *SeatStore) Seats(showID string, seatIDs []string) ([]domain.Seat, error) {
	entry, err := s.lookup(showID)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	seats := make([]domain.Seat, 0, len(seatIDs))

	for _, seatID := range seatIDs {
		seat, ok := entry.seats[seatID]
		if !ok {
			return nil, fmt.Errorf("seat %s of show %s: %w", seatID, showID, domain.ErrRecordNotFound)
		}

		seats = append(seats, *seat)
	}

	return seats, nil
}

// Transition moves the seat from expected to next if, and only if, its current
// state is expected. Entering BLOCKED stamps the holder and hold expiry,
// entering BOOKED stamps the holder and clears the expiry, entering
// AVAILABLE clears both.
func (s *SeatStore) Transition(showID, seatID string, expected, next domain.SeatState, hold domain.Hold) error {
	if !domain.ValidTransition(expected, next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, expected, next)
	}

	entry, err := s.lookup(showID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	seat, ok := entry.seats[seatID]
	if !ok {
		return fmt.Errorf("seat %s of show %s: %w", seatID, showID, domain.ErrRecordNotFound)
	}

	if seat.State != expected {
		return fmt.Errorf("%w: seat %s of show %s is %s, expected %s",
			domain.ErrStateConflict, seatID, showID, seat.State, expected)
	}

	seat.State = next

	switch next {
	case domain.SeatBlocked:
		seat.Holder = hold.Holder
		seat.HoldExpiresAt = hold.ExpiresAt
	case domain.SeatBooked:
		seat.Holder = hold.Holder
		seat.HoldExpiresAt = time.Time{}
	case domain.SeatAvailable:
		seat.Holder = ""
		seat.HoldExpiresAt = time.Time{}
	}

	return nil
}

// ListAvailable returns the AVAILABLE seats of the show in canonical order.
func (s *SeatStore) ListAvailable(showID string) ([]domain.Seat, error) {
	return s.list(showID, func(seat *domain.Seat) bool {
		return seat.State == domain.SeatAvailable
	})
}

// ListSeats returns every seat of the show in canonical order.
func (s *SeatStore) ListSeats(showID string) ([]domain.Seat, error) {
	return s.list(showID, func(*domain.Seat) bool { return true })
}

// ExpiredHolds scans all shows for BLOCKED seats whose hold expired at or
// before now. The result is a hint: state may change before the caller locks
// the seat.
func (s *SeatStore) ExpiredHolds(now time.Time) []domain.SeatKey {
	s.mu.RLock()
	entries := make([]*showSeats, 0, len(s.shows))
	for _, entry := range s.shows {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	var expired []domain.SeatKey

	for _, entry := range entries {
		entry.mu.RLock()
		for _, seatID := range entry.order {
			seat := entry.seats[seatID]
			if seat.HoldExpired(now) {
				expired = append(expired, seat.Key())
			}
		}
		entry.mu.RUnlock()
	}

	return expired
}

func (s *SeatStore) list(showID string, keep func(*domain.Seat) bool) ([]domain.Seat, error) {
	entry, err := s.lookup(showID)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	seats := make([]domain.Seat, 0, len(entry.order))

	for _, seatID := range entry.order {
		seat := entry.seats[seatID]
		if keep(seat) {
			seats = append(seats, *seat)
		}
	}

	return seats, nil
}

func (s *SeatStore) lookup(showID string) (*showSeats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.shows[showID]
	if !ok {
		return nil, fmt.Errorf("show %s: %w", showID, domain.ErrRecordNotFound)
	}

	return entry, nil
}
