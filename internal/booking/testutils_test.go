package booking

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/inventory"
	"github.com/metinatakli/seat-inventory/internal/mocks"
	"github.com/metinatakli/seat-inventory/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testShowID = "show-1"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type testEnv struct {
	store       *inventory.SeatStore
	locks       *inventory.LockManager
	clock       *fakeClock
	journal     *mocks.MockBookingJournal
	publisher   *mocks.MockEventPublisher
	coordinator *Coordinator
}

func newTestEnv(engine domain.PricingEngine, opts ...Option) *testEnv {
	env := &testEnv{
		store:     inventory.NewSeatStore(),
		locks:     inventory.NewLockManager(),
		clock:     &fakeClock{now: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)},
		journal:   new(mocks.MockBookingJournal),
		publisher: new(mocks.MockEventPublisher),
	}

	if engine == nil {
		engine = pricing.NewEngine(pricing.PolicyAdditive)
	}

	env.journal.On("RecordConfirmed", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.journal.On("RecordCancelled", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	defaults := []Option{
		WithJournal(env.journal),
		WithPublisher(env.publisher),
		WithClock(env.clock.Now),
		WithLockTimeout(200 * time.Millisecond),
	}

	env.coordinator = NewCoordinator(env.store, env.locks, engine, newTestLogger(), append(defaults, opts...)...)

	return env
}

func (e *testEnv) allocate(showID string, seatIDs ...string) {
	if err := e.store.AllocateShow(newTestInventory(showID, seatIDs...)); err != nil {
		panic(err)
	}
}

func (e *testEnv) state(showID, seatID string) domain.SeatState {
	state, err := e.store.GetState(showID, seatID)
	if err != nil {
		panic(err)
	}

	return state
}

// published returns the events handed to the publisher, in order.
func (e *testEnv) published() []domain.Event {
	var events []domain.Event
	for _, call := range e.publisher.Calls {
		if call.Method == "Publish" {
			events = append(events, call.Arguments.Get(1).(domain.Event))
		}
	}

	return events
}

func newTestInventory(showID string, seatIDs ...string) domain.ShowInventory {
	inv := domain.ShowInventory{
		Show: domain.Show{
			ID:         showID,
			MovieTitle: "Inception",
			StartTime:  time.Date(2026, 10, 20, 20, 0, 0, 0, time.UTC),
			BasePrice:  decimal.NewFromInt(10),
		},
	}

	for _, id := range seatIDs {
		inv.Seats = append(inv.Seats, domain.Seat{ID: id, Category: domain.SeatCategoryRegular})
	}

	return inv
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
