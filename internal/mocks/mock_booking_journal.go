package mocks

import (
	"context"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingJournal struct {
	mock.Mock
}

func (m *MockBookingJournal) RecordConfirmed(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingJournal) RecordCancelled(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingJournal) ConfirmedByShow(ctx context.Context, showID string) ([]domain.Booking, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
