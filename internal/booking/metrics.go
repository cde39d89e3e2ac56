package booking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/seat-inventory/internal/booking"

type metrics struct {
	confirmed metric.Int64Counter
	cancelled metric.Int64Counter
	failures  metric.Int64Counter
}

func newMetrics(logger *slog.Logger) metrics {
	meter := otel.Meter(instrumentationName)

	confirmed, err1 := meter.Int64Counter("booking.confirmed",
		metric.WithDescription("Number of bookings confirmed"))
	cancelled, err2 := meter.Int64Counter("booking.cancelled",
		metric.WithDescription("Number of bookings cancelled"))
	failures, err3 := meter.Int64Counter("booking.failures",
		metric.WithDescription("Number of failed booking transactions by reason"))

	if err := errors.Join(err1, err2, err3); err != nil {
		logger.Warn("failed to create booking metrics", "error", err)
	}

	return metrics{
		confirmed: confirmed,
		cancelled: cancelled,
		failures:  failures,
	}
}

func (m metrics) bookingConfirmed(ctx context.Context, showID string) {
	if m.confirmed != nil {
		m.confirmed.Add(ctx, 1, metric.WithAttributes(attribute.String("show.id", showID)))
	}
}

func (m metrics) bookingCancelled(ctx context.Context, showID string) {
	if m.cancelled != nil {
		m.cancelled.Add(ctx, 1, metric.WithAttributes(attribute.String("show.id", showID)))
	}
}

func (m metrics) failure(ctx context.Context, operation string, err error) {
	if m.failures == nil || err == nil {
		return
	}

	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("reason", FailureReason(err)),
	))
}

// FailureReason maps an error returned by the coordinator to a stable code.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrLockTimeout):
		return "LOCK_CONTENTION"
	case errors.Is(err, domain.ErrSeatAlreadyTaken):
		return "ALREADY_TAKEN"
	case errors.Is(err, domain.ErrHoldExpired):
		return "HOLD_EXPIRED"
	case errors.Is(err, domain.ErrPricingFailure):
		return "PRICING_FAILURE"
	default:
		return "INTERNAL"
	}
}
