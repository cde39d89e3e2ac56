package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SeatState string

const (
	SeatAvailable SeatState = "AVAILABLE"
	SeatBlocked   SeatState = "BLOCKED"
	SeatBooked    SeatState = "BOOKED"
)

type SeatCategory string

const (
	SeatCategoryRegular    SeatCategory = "REGULAR"
	SeatCategoryPremium    SeatCategory = "PREMIUM"
	SeatCategoryRecliner   SeatCategory = "RECLINER"
	SeatCategoryAccessible SeatCategory = "ACCESSIBLE"
)

// SeatKey identifies a seat across shows. Locks are keyed by it.
type SeatKey struct {
	ShowID string
	SeatID string
}

type Seat struct {
	ID         string
	ShowID     string
	Category   SeatCategory
	ExtraPrice decimal.Decimal
	State      SeatState
	// Holder is the transaction token, hold id or booking id that owns the
	// seat. Empty while the seat is AVAILABLE.
	Holder        string
	HoldExpiresAt time.Time
}

func (s Seat) Key() SeatKey {
	return SeatKey{ShowID: s.ShowID, SeatID: s.ID}
}

// HoldExpired reports whether the seat is BLOCKED past its hold expiry.
func (s Seat) HoldExpired(now time.Time) bool {
	return s.State == SeatBlocked && !s.HoldExpiresAt.After(now)
}

// Hold carries the ownership stamped on a seat by a state transition.
type Hold struct {
	Holder    string
	ExpiresAt time.Time
}

var seatTransitions = map[SeatState][]SeatState{
	SeatAvailable: {SeatBlocked},
	SeatBlocked:   {SeatBooked, SeatAvailable},
	SeatBooked:    {SeatAvailable},
}

// ValidTransition reports whether from -> to is an edge of the seat state machine.
func ValidTransition(from, to SeatState) bool {
	for _, next := range seatTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
