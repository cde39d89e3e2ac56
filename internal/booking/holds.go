package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// HoldSeats blocks the seats for a payment window and quotes their price. The
// seats stay BLOCKED under the hold id until the hold is confirmed, released
// or reclaimed by the hold supervisor after it expires.
func (c *Coordinator) HoldSeats(ctx context.Context, showID string, seatIDs []string, holdTimeout time.Duration) (_ *domain.SeatHold, err error) {
	ctx, span := c.tracer.Start(ctx, "booking.HoldSeats", trace.WithAttributes(
		attribute.String("show.id", showID),
		attribute.Int("seat.count", len(seatIDs)),
	))
	defer func() { c.finish(ctx, span, "hold", err) }()

	show, seatIDs, holdTimeout, err := c.validate(showID, seatIDs, holdTimeout)
	if err != nil {
		return nil, err
	}

	hold, err := c.holdLocked(ctx, show, seatIDs, holdTimeout)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("hold.id", hold.ID))
	c.logger.Info("seats held",
		"hold_id", hold.ID,
		"show_id", hold.ShowID,
		"seats", hold.SeatIDs,
		"expires_at", hold.ExpiresAt,
	)

	c.publish(context.WithoutCancel(ctx), domain.Event{
		Type:    domain.EventSeatsHeld,
		ShowID:  hold.ShowID,
		HoldID:  hold.ID,
		SeatIDs: hold.SeatIDs,
		Price:   hold.Price.String(),
	})

	return &hold, nil
}

func (c *Coordinator) holdLocked(ctx context.Context, show domain.Show, seatIDs []string, holdTimeout time.Duration) (domain.SeatHold, error) {
	handles, err := c.lockSeats(ctx, show.ID, seatIDs)
	if err != nil {
		return domain.SeatHold{}, err
	}
	defer c.locks.ReleaseAll(handles)

	if err := c.ensureAvailable(show.ID, seatIDs); err != nil {
		return domain.SeatHold{}, err
	}

	now := c.now()
	hold := domain.SeatHold{
		ID:        holdIDPrefix + shortuuid.New(),
		ShowID:    show.ID,
		SeatIDs:   seatIDs,
		ExpiresAt: now.Add(holdTimeout),
		CreatedAt: now,
	}

	if err := c.blockSeats(show.ID, seatIDs, domain.Hold{Holder: hold.ID, ExpiresAt: hold.ExpiresAt}); err != nil {
		return domain.SeatHold{}, err
	}

	price, err := c.price(ctx, show, seatIDs)
	if err != nil {
		c.revert(show.ID, seatIDs, domain.SeatBlocked)
		return domain.SeatHold{}, err
	}
	hold.Price = price

	// registered before the locks go so the supervisor hook always finds it
	c.ledger.addHold(hold)

	return hold, nil
}

// ConfirmHold books the seats of a pending hold at the price quoted when the
// hold was taken. When any seat of the hold expired or was already reclaimed
// the remaining seats are released too and domain.ErrHoldExpired is returned.
func (c *Coordinator) ConfirmHold(ctx context.Context, holdID string) (_ *domain.Booking, err error) {
	ctx, span := c.tracer.Start(ctx, "booking.ConfirmHold", trace.WithAttributes(
		attribute.String("hold.id", holdID),
	))
	defer func() { c.finish(ctx, span, "confirm_hold", err) }()

	p, ok := c.ledger.hold(holdID)
	if !ok {
		return nil, fmt.Errorf("hold %s not found or has expired: %w", holdID, domain.ErrRecordNotFound)
	}

	booking, err := c.confirmHoldLocked(ctx, p.hold)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("booking.id", booking.ID))
	c.afterConfirm(ctx, booking)

	return &booking, nil
}

func (c *Coordinator) confirmHoldLocked(ctx context.Context, hold domain.SeatHold) (domain.Booking, error) {
	handles, err := c.lockSeats(ctx, hold.ShowID, hold.SeatIDs)
	if err != nil {
		return domain.Booking{}, err
	}
	defer c.locks.ReleaseAll(handles)

	p, ok := c.ledger.hold(hold.ID)
	if !ok {
		return domain.Booking{}, fmt.Errorf("hold %s not found or has expired: %w", hold.ID, domain.ErrRecordNotFound)
	}

	now := c.now()

	intact, err := c.holdIntact(p, now)
	if err != nil {
		return domain.Booking{}, err
	}

	if !intact {
		c.releaseHeldSeats(hold)
		c.ledger.removeHold(hold.ID)
		c.logger.Info("hold expired before confirmation", "hold_id", hold.ID, "show_id", hold.ShowID)

		return domain.Booking{}, fmt.Errorf("hold %s: %w", hold.ID, domain.ErrHoldExpired)
	}

	booking := domain.Booking{
		ID:        uuid.NewString(),
		ShowID:    hold.ShowID,
		SeatIDs:   hold.SeatIDs,
		Price:     hold.Price,
		Status:    domain.BookingConfirmed,
		CreatedAt: now,
	}

	if err := c.bookSeats(hold.ShowID, hold.SeatIDs, booking.ID); err != nil {
		c.ledger.removeHold(hold.ID)
		return domain.Booking{}, err
	}

	c.ledger.addBooking(booking)
	c.ledger.removeHold(hold.ID)
	c.journalConfirmed(ctx, booking)

	return booking, nil
}

// holdIntact reports whether every seat of the hold is still BLOCKED by it and
// unexpired. Must be called with the hold's seat locks held.
func (c *Coordinator) holdIntact(p pendingHold, now time.Time) (bool, error) {
	if len(p.reclaimed) > 0 {
		return false, nil
	}

	seats, err := c.store.Seats(p.hold.ShowID, p.hold.SeatIDs)
	if err != nil {
		return false, fmt.Errorf("hold %s: %w", p.hold.ID, err)
	}

	for _, seat := range seats {
		if seat.State != domain.SeatBlocked || seat.Holder != p.hold.ID || seat.HoldExpired(now) {
			return false, nil
		}
	}

	return true, nil
}

// ReleaseHold gives the seats of a pending hold back before it expires.
func (c *Coordinator) ReleaseHold(ctx context.Context, holdID string) (err error) {
	ctx, span := c.tracer.Start(ctx, "booking.ReleaseHold", trace.WithAttributes(
		attribute.String("hold.id", holdID),
	))
	defer func() { c.finish(ctx, span, "release_hold", err) }()

	p, ok := c.ledger.hold(holdID)
	if !ok {
		return fmt.Errorf("hold %s not found or has expired: %w", holdID, domain.ErrRecordNotFound)
	}

	handles, err := c.lockSeats(ctx, p.hold.ShowID, p.hold.SeatIDs)
	if err != nil {
		return err
	}

	hold, ok := c.ledger.removeHold(holdID)
	if ok {
		c.releaseHeldSeats(hold)
	}
	c.locks.ReleaseAll(handles)

	if !ok {
		return fmt.Errorf("hold %s not found or has expired: %w", holdID, domain.ErrRecordNotFound)
	}

	c.logger.Info("hold released", "hold_id", hold.ID, "show_id", hold.ShowID)
	c.publish(context.WithoutCancel(ctx), domain.Event{
		Type:    domain.EventHoldReleased,
		ShowID:  hold.ShowID,
		HoldID:  hold.ID,
		SeatIDs: hold.SeatIDs,
	})

	return nil
}

// releaseHeldSeats returns the seats still BLOCKED by the hold to AVAILABLE.
// Must be called with the hold's seat locks held.
func (c *Coordinator) releaseHeldSeats(hold domain.SeatHold) {
	seats, err := c.store.Seats(hold.ShowID, hold.SeatIDs)
	if err != nil {
		c.logger.Error("failed to read held seats", "hold_id", hold.ID, "error", err)
		return
	}

	for _, seat := range seats {
		if seat.State != domain.SeatBlocked || seat.Holder != hold.ID {
			continue
		}

		err := c.store.Transition(hold.ShowID, seat.ID, domain.SeatBlocked, domain.SeatAvailable, domain.Hold{})
		if err != nil {
			c.logRevertFailure(hold.ShowID, seat.ID, err)
		}
	}
}

// HoldReclaimed is registered as a reclaim hook on the hold supervisor. It
// drops the reclaimed seat from its pending hold and retires the hold once
// none of its seats are left.
func (c *Coordinator) HoldReclaimed(ctx context.Context, seat domain.Seat) {
	if !strings.HasPrefix(seat.Holder, holdIDPrefix) {
		return
	}

	hold, retired := c.ledger.markReclaimed(seat.Holder, seat.ID)
	if !retired {
		return
	}

	c.logger.Info("hold expired", "hold_id", hold.ID, "show_id", hold.ShowID)
	c.publish(ctx, domain.Event{
		Type:    domain.EventHoldExpired,
		ShowID:  hold.ShowID,
		HoldID:  hold.ID,
		SeatIDs: hold.SeatIDs,
	})
}
