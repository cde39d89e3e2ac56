package inventory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultSweepInterval    = 2 * time.Second
	DefaultSweepLockTimeout = 100 * time.Millisecond

	instrumentationName = "github.com/metinatakli/seat-inventory/internal/inventory"
)

// ReclaimHook is told about every seat the supervisor returned to AVAILABLE.
// The seat value is the snapshot taken right before the reclaim.
type ReclaimHook func(ctx context.Context, seat domain.Seat)

// HoldSupervisor periodically returns seats stuck in BLOCKED past their hold
// expiry to AVAILABLE. It only ever takes a seat's lock through the regular
// LockManager and skips seats that are locked by someone else.
type HoldSupervisor struct {
	store       *SeatStore
	locks       *LockManager
	logger      *slog.Logger
	interval    time.Duration
	lockTimeout time.Duration
	now         func() time.Time
	hooks       []ReclaimHook
	reclaimed   metric.Int64Counter
}

type SupervisorOption func(*HoldSupervisor)

func WithSweepInterval(d time.Duration) SupervisorOption {
	return func(s *HoldSupervisor) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithSweepLockTimeout(d time.Duration) SupervisorOption {
	return func(s *HoldSupervisor) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

func WithSupervisorClock(now func() time.Time) SupervisorOption {
	return func(s *HoldSupervisor) {
		s.now = now
	}
}

func WithReclaimHook(hook ReclaimHook) SupervisorOption {
	return func(s *HoldSupervisor) {
		s.hooks = append(s.hooks, hook)
	}
}

func NewHoldSupervisor(store *SeatStore, locks *LockManager, logger *slog.Logger, opts ...SupervisorOption) *HoldSupervisor {
	s := &HoldSupervisor{
		store:       store,
		locks:       locks,
		logger:      logger.With("component", "hold_supervisor"),
		interval:    DefaultSweepInterval,
		lockTimeout: DefaultSweepLockTimeout,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	reclaimed, err := otel.Meter(instrumentationName).Int64Counter(
		"inventory.holds.reclaimed",
		metric.WithDescription("Number of expired seat holds returned to AVAILABLE"),
	)
	if err != nil {
		s.logger.Warn("failed to create reclaimed holds counter", "error", err)
	}
	s.reclaimed = reclaimed

	return s
}

// Run sweeps on every tick until ctx is done.
func (s *HoldSupervisor) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("hold supervisor started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("hold supervisor stopped")
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep makes one pass over the expired holds and returns how many seats it
// reclaimed.
func (s *HoldSupervisor) Sweep(ctx context.Context) int {
	candidates := s.store.ExpiredHolds(s.now())
	reclaimed := 0

	for _, key := range candidates {
		if ctx.Err() != nil {
			break
		}

		seat, ok, err := s.reclaim(ctx, key)
		if err != nil {
			s.logger.Error("failed to reclaim expired hold",
				"show_id", key.ShowID,
				"seat_id", key.SeatID,
				"error", err,
			)
			continue
		}

		if !ok {
			continue
		}

		reclaimed++

		if s.reclaimed != nil {
			s.reclaimed.Add(ctx, 1, metric.WithAttributes(attribute.String("show.id", key.ShowID)))
		}

		for _, hook := range s.hooks {
			hook(ctx, seat)
		}
	}

	if reclaimed > 0 {
		s.logger.Info("reclaimed expired seat holds", "count", reclaimed)
	}

	return reclaimed
}

func (s *HoldSupervisor) reclaim(ctx context.Context, key domain.SeatKey) (domain.Seat, bool, error) {
	handle, err := s.locks.Acquire(ctx, key.ShowID, key.SeatID, s.lockTimeout)
	if err != nil {
		if errors.Is(err, domain.ErrLockTimeout) {
			s.logger.Debug("seat is locked, retrying on next sweep", "show_id", key.ShowID, "seat_id", key.SeatID)
			return domain.Seat{}, false, nil
		}

		return domain.Seat{}, false, err
	}
	defer s.locks.Release(handle)

	// The owning transaction may have finished between the scan and the lock.
	seat, err := s.store.Seat(key.ShowID, key.SeatID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Seat{}, false, nil
		}

		return domain.Seat{}, false, err
	}

	if !seat.HoldExpired(s.now()) {
		return domain.Seat{}, false, nil
	}

	err = s.store.Transition(key.ShowID, key.SeatID, domain.SeatBlocked, domain.SeatAvailable, domain.Hold{})
	if err != nil {
		return domain.Seat{}, false, err
	}

	return seat, true, nil
}
