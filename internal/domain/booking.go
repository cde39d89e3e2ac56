package domain

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID          string
	ShowID      string
	SeatIDs     []string
	Price       decimal.Decimal
	Status      BookingStatus
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// Clone returns a copy that shares no mutable state with b.
func (b Booking) Clone() Booking {
	b.SeatIDs = slices.Clone(b.SeatIDs)
	if b.CancelledAt != nil {
		cancelledAt := *b.CancelledAt
		b.CancelledAt = &cancelledAt
	}

	return b
}

// SeatHold keeps seats BLOCKED for a payment window until it is confirmed,
// released or reclaimed by the hold supervisor.
type SeatHold struct {
	ID        string
	ShowID    string
	SeatIDs   []string
	Price     decimal.Decimal
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (h SeatHold) Clone() SeatHold {
	h.SeatIDs = slices.Clone(h.SeatIDs)
	return h
}

type BookingJournal interface {
	RecordConfirmed(ctx context.Context, booking Booking) error
	RecordCancelled(ctx context.Context, booking Booking) error
	ConfirmedByShow(ctx context.Context, showID string) ([]Booking, error)
}
