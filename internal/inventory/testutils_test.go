package inventory

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/shopspring/decimal"
)

const testShowID = "show-1"

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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)}
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
