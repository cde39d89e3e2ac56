// Package booking runs multi-seat transactions against the seat inventory:
// booking, cancelling, holding seats for a payment window and confirming or
// releasing those holds. Every transaction takes the seat locks of the seats
// it touches in canonical order and is all-or-nothing.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/inventory"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultLockTimeout    = 2 * time.Second
	DefaultHoldTimeout    = 10 * time.Minute
	DefaultMaxHoldTimeout = 15 * time.Minute

	transactionTokenPrefix = "txn_"
	holdIDPrefix           = "hold_"
)

type Coordinator struct {
	store   *inventory.SeatStore
	locks   *inventory.LockManager
	pricing domain.PricingEngine
	catalog domain.CatalogProvider
	journal domain.BookingJournal
	events  domain.EventPublisher
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics metrics
	ledger  *ledger
	now     func() time.Time

	lockTimeout        time.Duration
	defaultHoldTimeout time.Duration
	maxHoldTimeout     time.Duration
}

type Option func(*Coordinator)

func WithCatalog(catalog domain.CatalogProvider) Option {
	return func(c *Coordinator) {
		c.catalog = catalog
	}
}

func WithJournal(journal domain.BookingJournal) Option {
	return func(c *Coordinator) {
		c.journal = journal
	}
}

func WithPublisher(publisher domain.EventPublisher) Option {
	return func(c *Coordinator) {
		c.events = publisher
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithLockTimeout bounds how long a transaction waits for all of its seat
// locks. A non-positive timeout turns acquisition into a try-lock.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.lockTimeout = d
	}
}

func WithHoldTimeouts(defaultTimeout, maxTimeout time.Duration) Option {
	return func(c *Coordinator) {
		if defaultTimeout > 0 {
			c.defaultHoldTimeout = defaultTimeout
		}
		if maxTimeout > 0 {
			c.maxHoldTimeout = maxTimeout
		}
	}
}

func NewCoordinator(
	store *inventory.SeatStore,
	locks *inventory.LockManager,
	pricing domain.PricingEngine,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		store:              store,
		locks:              locks,
		pricing:            pricing,
		logger:             logger.With("component", "booking_coordinator"),
		tracer:             otel.Tracer(instrumentationName),
		ledger:             newLedger(),
		now:                time.Now,
		lockTimeout:        DefaultLockTimeout,
		defaultHoldTimeout: DefaultHoldTimeout,
		maxHoldTimeout:     DefaultMaxHoldTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.defaultHoldTimeout > c.maxHoldTimeout {
		c.defaultHoldTimeout = c.maxHoldTimeout
	}

	c.metrics = newMetrics(c.logger)

	return c
}

// Book reserves every seat in seatIDs for showID or none of them. The seats
// stay BLOCKED under a provisional token while the price is computed; any
// failure after that point puts them back to AVAILABLE before the locks are
// released.
func (c *Coordinator) Book(ctx context.Context, showID string, seatIDs []string, holdTimeout time.Duration) (_ *domain.Booking, err error) {
	ctx, span := c.tracer.Start(ctx, "booking.Book", trace.WithAttributes(
		attribute.String("show.id", showID),
		attribute.Int("seat.count", len(seatIDs)),
	))
	defer func() { c.finish(ctx, span, "book", err) }()

	show, seatIDs, holdTimeout, err := c.validate(showID, seatIDs, holdTimeout)
	if err != nil {
		return nil, err
	}

	booking, err := c.bookLocked(ctx, show, seatIDs, holdTimeout)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("booking.id", booking.ID))
	c.afterConfirm(ctx, booking)

	return &booking, nil
}

func (c *Coordinator) bookLocked(ctx context.Context, show domain.Show, seatIDs []string, holdTimeout time.Duration) (domain.Booking, error) {
	handles, err := c.lockSeats(ctx, show.ID, seatIDs)
	if err != nil {
		return domain.Booking{}, err
	}
	defer c.locks.ReleaseAll(handles)

	if err := c.ensureAvailable(show.ID, seatIDs); err != nil {
		return domain.Booking{}, err
	}

	now := c.now()
	token := transactionTokenPrefix + shortuuid.New()

	if err := c.blockSeats(show.ID, seatIDs, domain.Hold{Holder: token, ExpiresAt: now.Add(holdTimeout)}); err != nil {
		return domain.Booking{}, err
	}

	price, err := c.price(ctx, show, seatIDs)
	if err != nil {
		c.revert(show.ID, seatIDs, domain.SeatBlocked)
		return domain.Booking{}, err
	}

	booking := domain.Booking{
		ID:        uuid.NewString(),
		ShowID:    show.ID,
		SeatIDs:   seatIDs,
		Price:     price,
		Status:    domain.BookingConfirmed,
		CreatedAt: now,
	}

	if err := c.bookSeats(show.ID, seatIDs, booking.ID); err != nil {
		return domain.Booking{}, err
	}

	c.ledger.addBooking(booking)
	c.journalConfirmed(ctx, booking)

	return booking, nil
}

// Cancel releases the seats of a CONFIRMED booking. Cancelling an unknown or
// already cancelled booking fails with domain.ErrRecordNotFound.
func (c *Coordinator) Cancel(ctx context.Context, bookingID string) (err error) {
	ctx, span := c.tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(
		attribute.String("booking.id", bookingID),
	))
	defer func() { c.finish(ctx, span, "cancel", err) }()

	b, ok := c.ledger.booking(bookingID)
	if !ok || b.Status != domain.BookingConfirmed {
		return fmt.Errorf("booking %s: %w", bookingID, domain.ErrRecordNotFound)
	}

	cancelled, err := c.cancelLocked(ctx, b)
	if err != nil {
		return err
	}

	c.afterCancel(ctx, cancelled)

	return nil
}

func (c *Coordinator) cancelLocked(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	handles, err := c.lockSeats(ctx, b.ShowID, b.SeatIDs)
	if err != nil {
		return domain.Booking{}, err
	}
	defer c.locks.ReleaseAll(handles)

	// a concurrent Cancel may have won the locks first
	current, ok := c.ledger.booking(b.ID)
	if !ok || current.Status != domain.BookingConfirmed {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", b.ID, domain.ErrRecordNotFound)
	}

	seats, err := c.store.Seats(b.ShowID, b.SeatIDs)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("cancel booking %s: %w", b.ID, err)
	}

	for _, seat := range seats {
		if seat.State != domain.SeatBooked || seat.Holder != b.ID {
			return domain.Booking{}, fmt.Errorf("cancel booking %s: seat %s is %s held by %q: %w",
				b.ID, seat.ID, seat.State, seat.Holder, domain.ErrStateConflict)
		}
	}

	for i, seatID := range b.SeatIDs {
		err := c.store.Transition(b.ShowID, seatID, domain.SeatBooked, domain.SeatAvailable, domain.Hold{})
		if err != nil {
			for _, freed := range b.SeatIDs[:i] {
				c.restoreBooked(b.ShowID, freed, b.ID)
			}

			return domain.Booking{}, fmt.Errorf("cancel booking %s: %w", b.ID, err)
		}
	}

	cancelled, ok := c.ledger.markCancelled(b.ID, c.now())
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", b.ID, domain.ErrRecordNotFound)
	}
	c.journalCancelled(ctx, cancelled)

	return cancelled, nil
}

type BookResult struct {
	Booking *domain.Booking
	Err     error
}

// BulkBook runs an independent Book for every seat set, in request order.
func (c *Coordinator) BulkBook(ctx context.Context, showID string, seatSets [][]string, holdTimeout time.Duration) []BookResult {
	results := make([]BookResult, len(seatSets))

	for i, seatIDs := range seatSets {
		booking, err := c.Book(ctx, showID, seatIDs, holdTimeout)
		results[i] = BookResult{Booking: booking, Err: err}
	}

	return results
}

type CancelResult struct {
	BookingID string
	Err       error
}

// BulkCancel cancels every booking independently; one failure never stops the
// remaining cancellations.
func (c *Coordinator) BulkCancel(ctx context.Context, bookingIDs []string) []CancelResult {
	results := make([]CancelResult, len(bookingIDs))

	for i, id := range bookingIDs {
		results[i] = CancelResult{BookingID: id, Err: c.Cancel(ctx, id)}
	}

	return results
}

func (c *Coordinator) Booking(bookingID string) (domain.Booking, error) {
	b, ok := c.ledger.booking(bookingID)
	if !ok {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", bookingID, domain.ErrRecordNotFound)
	}

	return b, nil
}

func (c *Coordinator) Hold(holdID string) (domain.SeatHold, error) {
	p, ok := c.ledger.hold(holdID)
	if !ok {
		return domain.SeatHold{}, fmt.Errorf("hold %s: %w", holdID, domain.ErrRecordNotFound)
	}

	return p.hold, nil
}

// validate checks a seat request and returns the show together with the seat
// ids in canonical order and the effective hold timeout.
func (c *Coordinator) validate(showID string, seatIDs []string, holdTimeout time.Duration) (domain.Show, []string, time.Duration, error) {
	if showID == "" {
		return domain.Show{}, nil, 0, fmt.Errorf("%w: show id is required", domain.ErrInvalidRequest)
	}

	if len(seatIDs) == 0 {
		return domain.Show{}, nil, 0, fmt.Errorf("%w: at least one seat is required", domain.ErrInvalidRequest)
	}

	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if id == "" {
			return domain.Show{}, nil, 0, fmt.Errorf("%w: seat id must not be blank", domain.ErrInvalidRequest)
		}

		if _, ok := seen[id]; ok {
			return domain.Show{}, nil, 0, fmt.Errorf("%w: seat %s is requested more than once", domain.ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}

	switch {
	case holdTimeout < 0:
		return domain.Show{}, nil, 0, fmt.Errorf("%w: hold timeout must not be negative", domain.ErrInvalidRequest)
	case holdTimeout == 0:
		holdTimeout = c.defaultHoldTimeout
	case holdTimeout > c.maxHoldTimeout:
		return domain.Show{}, nil, 0, fmt.Errorf("%w: hold timeout %s exceeds the maximum of %s",
			domain.ErrInvalidRequest, holdTimeout, c.maxHoldTimeout)
	}

	show, err := c.store.Show(showID)
	if err != nil {
		return domain.Show{}, nil, 0, err
	}

	for _, id := range seatIDs {
		if _, err := c.store.Seat(showID, id); err != nil {
			return domain.Show{}, nil, 0, fmt.Errorf("%w: seat %s does not belong to show %s",
				domain.ErrInvalidRequest, id, showID)
		}
	}

	return show, inventory.CanonicalOrder(seatIDs), holdTimeout, nil
}

func (c *Coordinator) lockSeats(ctx context.Context, showID string, seatIDs []string) ([]*inventory.LockHandle, error) {
	handles, err := c.locks.AcquireAll(ctx, showID, seatIDs, c.lockTimeout)
	if err != nil {
		if errors.Is(err, domain.ErrLockTimeout) {
			return nil, fmt.Errorf("%w: %w", domain.ErrLockContention, err)
		}

		return nil, err
	}

	return handles, nil
}

// ensureAvailable must be called with the seat locks held.
func (c *Coordinator) ensureAvailable(showID string, seatIDs []string) error {
	seats, err := c.store.Seats(showID, seatIDs)
	if err != nil {
		return err
	}

	var taken []string
	for _, seat := range seats {
		if seat.State != domain.SeatAvailable {
			taken = append(taken, seat.ID)
		}
	}

	if len(taken) > 0 {
		return &domain.SeatConflictError{ShowID: showID, SeatIDs: taken}
	}

	return nil
}

// blockSeats moves every seat from AVAILABLE to BLOCKED, undoing the seats it
// already blocked when one transition fails.
func (c *Coordinator) blockSeats(showID string, seatIDs []string, hold domain.Hold) error {
	for i, seatID := range seatIDs {
		err := c.store.Transition(showID, seatID, domain.SeatAvailable, domain.SeatBlocked, hold)
		if err != nil {
			c.revert(showID, seatIDs[:i], domain.SeatBlocked)

			if errors.Is(err, domain.ErrStateConflict) {
				return &domain.SeatConflictError{ShowID: showID, SeatIDs: []string{seatID}}
			}

			return fmt.Errorf("block seat %s: %w", seatID, err)
		}
	}

	return nil
}

// bookSeats moves BLOCKED seats to BOOKED for bookingID. On failure every seat
// ends up AVAILABLE again.
func (c *Coordinator) bookSeats(showID string, seatIDs []string, bookingID string) error {
	hold := domain.Hold{Holder: bookingID}

	for i, seatID := range seatIDs {
		err := c.store.Transition(showID, seatID, domain.SeatBlocked, domain.SeatBooked, hold)
		if err != nil {
			for _, booked := range seatIDs[:i] {
				if rerr := c.store.Transition(showID, booked, domain.SeatBooked, domain.SeatAvailable, domain.Hold{}); rerr != nil {
					c.logRevertFailure(showID, booked, rerr)
				}
			}
			c.revert(showID, seatIDs[i:], domain.SeatBlocked)

			return fmt.Errorf("book seat %s: %w", seatID, err)
		}
	}

	return nil
}

// revert returns seats in state from back to AVAILABLE. Seats found in any
// other state are left alone.
func (c *Coordinator) revert(showID string, seatIDs []string, from domain.SeatState) {
	for _, seatID := range seatIDs {
		err := c.store.Transition(showID, seatID, from, domain.SeatAvailable, domain.Hold{})
		if err != nil && !errors.Is(err, domain.ErrStateConflict) {
			c.logRevertFailure(showID, seatID, err)
		}
	}
}

// restoreBooked puts an AVAILABLE seat back to BOOKED for bookingID. There is
// no direct edge between the two states so the seat goes through BLOCKED.
func (c *Coordinator) restoreBooked(showID, seatID, bookingID string) error {
	hold := domain.Hold{Holder: bookingID, ExpiresAt: c.now().Add(c.defaultHoldTimeout)}

	err := c.store.Transition(showID, seatID, domain.SeatAvailable, domain.SeatBlocked, hold)
	if err == nil {
		err = c.store.Transition(showID, seatID, domain.SeatBlocked, domain.SeatBooked, domain.Hold{Holder: bookingID})
	}

	if err != nil {
		c.logRevertFailure(showID, seatID, err)
	}

	return err
}

func (c *Coordinator) logRevertFailure(showID, seatID string, err error) {
	c.logger.Error("failed to revert seat state",
		"show_id", showID,
		"seat_id", seatID,
		"error", err,
	)
}

// price must be called with the seat locks held and the seats BLOCKED. A
// panicking pricing engine is reported as a pricing failure so the caller can
// still roll the seats back.
func (c *Coordinator) price(ctx context.Context, show domain.Show, seatIDs []string) (price decimal.Decimal, err error) {
	seats, err := c.store.Seats(show.ID, seatIDs)
	if err != nil {
		return decimal.Zero, err
	}

	defer func() {
		if r := recover(); r != nil {
			price = decimal.Zero
			err = fmt.Errorf("%w: pricing engine panicked: %v", domain.ErrPricingFailure, r)
		}
	}()

	price, err = c.pricing.ComputePrice(ctx, show, seats)
	if err != nil {
		if errors.Is(err, domain.ErrPricingFailure) {
			return decimal.Zero, err
		}

		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrPricingFailure, err)
	}

	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative price %s", domain.ErrPricingFailure, price)
	}

	return price, nil
}

// finish closes a transaction span and counts failures.
func (c *Coordinator) finish(ctx context.Context, span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.failure(ctx, operation, err)
	}

	span.End()
}

// journalConfirmed and journalCancelled must be called with the booking's seat
// locks held: a booking's journal entries are then written in the order its
// transitions happened. Journal failures are logged and never undo the
// transition.
func (c *Coordinator) journalConfirmed(ctx context.Context, b domain.Booking) {
	if c.journal == nil {
		return
	}

	if err := c.journal.RecordConfirmed(context.WithoutCancel(ctx), b); err != nil {
		c.logger.Error("failed to journal confirmed booking", "booking_id", b.ID, "error", err)
	}
}

func (c *Coordinator) journalCancelled(ctx context.Context, b domain.Booking) {
	if c.journal == nil {
		return
	}

	if err := c.journal.RecordCancelled(context.WithoutCancel(ctx), b); err != nil {
		c.logger.Error("failed to journal cancelled booking", "booking_id", b.ID, "error", err)
	}
}

// afterConfirm runs once the seat locks are released. Event failures are
// logged and never undo the booking.
func (c *Coordinator) afterConfirm(ctx context.Context, b domain.Booking) {
	ctx = context.WithoutCancel(ctx)

	c.metrics.bookingConfirmed(ctx, b.ShowID)
	c.logger.Info("booking confirmed",
		"booking_id", b.ID,
		"show_id", b.ShowID,
		"seats", b.SeatIDs,
		"price", b.Price.String(),
	)

	c.publish(ctx, domain.Event{
		Type:      domain.EventBookingConfirmed,
		ShowID:    b.ShowID,
		BookingID: b.ID,
		SeatIDs:   b.SeatIDs,
		Price:     b.Price.String(),
	})
}

func (c *Coordinator) afterCancel(ctx context.Context, b domain.Booking) {
	ctx = context.WithoutCancel(ctx)

	c.metrics.bookingCancelled(ctx, b.ShowID)
	c.logger.Info("booking cancelled", "booking_id", b.ID, "show_id", b.ShowID)

	c.publish(ctx, domain.Event{
		Type:      domain.EventBookingCancelled,
		ShowID:    b.ShowID,
		BookingID: b.ID,
		SeatIDs:   b.SeatIDs,
		Price:     b.Price.String(),
	})
}

func (c *Coordinator) publish(ctx context.Context, event domain.Event) {
	if c.events == nil {
		return
	}

	event.ID = uuid.NewString()
	event.OccurredAt = c.now()

	if err := c.events.Publish(ctx, event); err != nil {
		c.logger.Error("failed to publish event",
			"event_type", string(event.Type),
			"show_id", event.ShowID,
			"error", err,
		)
	}
}
