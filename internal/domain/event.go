package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventSeatsHeld        EventType = "seats.held"
	EventHoldReleased     EventType = "hold.released"
	EventHoldExpired      EventType = "hold.expired"
)

type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ShowID     string    `json:"show_id"`
	BookingID  string    `json:"booking_id,omitempty"`
	HoldID     string    `json:"hold_id,omitempty"`
	SeatIDs    []string  `json:"seat_ids"`
	Price      string    `json:"price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
