package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	event := domain.Event{
		ID:         "evt-1",
		Type:       domain.EventBookingConfirmed,
		ShowID:     "show-1",
		BookingID:  "booking-1",
		SeatIDs:    []string{"A1", "A2"},
		Price:      "20",
		OccurredAt: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC),
	}

	t.Run("should add the event to the stream", func(t *testing.T) {
		client := new(mocks.MockRedisClient)
		client.On("XAdd", mock.Anything, mock.MatchedBy(func(a *redis.XAddArgs) bool {
			values, ok := a.Values.(map[string]any)
			if !ok || a.Stream != "events" || a.MaxLen != 100 || !a.Approx {
				return false
			}

			var got domain.Event
			if err := json.Unmarshal([]byte(values["payload"].(string)), &got); err != nil {
				return false
			}

			return values["type"] == "booking.confirmed" && got.BookingID == "booking-1" && len(got.SeatIDs) == 2
		})).Return(redis.NewStringResult("1-0", nil))

		publisher := NewRedisStreamPublisher(client, "events", 100)

		require.NoError(t, publisher.Publish(context.Background(), event))
		client.AssertExpectations(t)
	})

	t.Run("should wrap redis errors", func(t *testing.T) {
		client := new(mocks.MockRedisClient)
		client.On("XAdd", mock.Anything, mock.Anything).
			Return(redis.NewStringResult("", mocks.MockRedisError{Msg: "READONLY"}))

		publisher := NewRedisStreamPublisher(client, "", 0)

		err := publisher.Publish(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), DefaultStream)
		assert.Contains(t, err.Error(), "READONLY")
	})
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), domain.Event{}))
}
