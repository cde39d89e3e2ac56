package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/inventory"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errNoCatalog = errors.New("no catalog provider configured")

// OpenShow loads a show's seat allocation from the catalog into the store and
// marks the seats of bookings already confirmed in the journal as BOOKED.
func (c *Coordinator) OpenShow(ctx context.Context, showID string) (_ *domain.ShowInventory, err error) {
	ctx, span := c.tracer.Start(ctx, "booking.OpenShow", trace.WithAttributes(
		attribute.String("show.id", showID),
	))
	defer func() { c.finish(ctx, span, "open_show", err) }()

	if showID == "" {
		return nil, fmt.Errorf("%w: show id is required", domain.ErrInvalidRequest)
	}

	if c.catalog == nil {
		return nil, errNoCatalog
	}

	if _, err := c.store.Show(showID); err == nil {
		return nil, fmt.Errorf("show %s: %w", showID, domain.ErrShowAlreadyAllocated)
	}

	inv, err := c.catalog.GetShowInventory(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("load inventory of show %s: %w", showID, err)
	}

	if inv.Show.ID != showID {
		return nil, fmt.Errorf("catalog returned show %q for %q", inv.Show.ID, showID)
	}

	restored, err := c.loadBookings(ctx, *inv)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]string)
	for _, b := range restored {
		for _, seatID := range b.SeatIDs {
			booked[seatID] = b.ID
		}
	}

	if err := c.store.AllocateShowWithBookings(*inv, booked); err != nil {
		return nil, err
	}

	for _, b := range restored {
		c.ledger.addBooking(b)
	}

	c.logger.Info("show opened",
		"show_id", showID,
		"seats", len(inv.Seats),
		"restored_bookings", len(restored),
	)

	seats, err := c.store.ListSeats(showID)
	if err != nil {
		return nil, err
	}

	return &domain.ShowInventory{Show: inv.Show, Seats: seats}, nil
}

// loadBookings reads the show's confirmed bookings from the journal and keeps
// those that can be placed on the inventory. A booking naming an unknown seat
// or a seat already claimed by an earlier journal entry is skipped.
func (c *Coordinator) loadBookings(ctx context.Context, inv domain.ShowInventory) ([]domain.Booking, error) {
	if c.journal == nil {
		return nil, nil
	}

	showID := inv.Show.ID

	bookings, err := c.journal.ConfirmedByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed bookings of show %s: %w", showID, err)
	}

	known := make(map[string]struct{}, len(inv.Seats))
	for _, seat := range inv.Seats {
		known[seat.ID] = struct{}{}
	}

	claimed := make(map[string]string)
	restored := make([]domain.Booking, 0, len(bookings))

	for _, b := range bookings {
		if err := checkRestorable(b, showID, known, claimed); err != nil {
			c.logger.Error("failed to restore booking", "booking_id", b.ID, "show_id", showID, "error", err)
			continue
		}

		b.SeatIDs = inventory.CanonicalOrder(b.SeatIDs)
		for _, seatID := range b.SeatIDs {
			claimed[seatID] = b.ID
		}
		restored = append(restored, b)
	}

	return restored, nil
}

func checkRestorable(b domain.Booking, showID string, known map[string]struct{}, claimed map[string]string) error {
	if b.ShowID != showID || b.Status != domain.BookingConfirmed || len(b.SeatIDs) == 0 {
		return fmt.Errorf("%w: booking %s is not restorable", domain.ErrInvalidRequest, b.ID)
	}

	// booking ids are handed out as UUIDs and clients address them that way
	if _, err := uuid.Parse(b.ID); err != nil {
		return fmt.Errorf("%w: booking id %q is not a UUID", domain.ErrInvalidRequest, b.ID)
	}

	seen := make(map[string]struct{}, len(b.SeatIDs))
	for _, seatID := range b.SeatIDs {
		if _, ok := known[seatID]; !ok {
			return fmt.Errorf("seat %s: %w", seatID, domain.ErrRecordNotFound)
		}
		if _, dup := seen[seatID]; dup {
			return fmt.Errorf("%w: duplicate seat %s", domain.ErrInvalidRequest, seatID)
		}
		seen[seatID] = struct{}{}

		if holder, taken := claimed[seatID]; taken {
			return fmt.Errorf("booking %s holds it: %w", holder, &domain.SeatConflictError{ShowID: showID, SeatIDs: []string{seatID}})
		}
	}

	return nil
}
