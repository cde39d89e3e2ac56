// Package events publishes booking lifecycle events to a capped Redis stream.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultStream = "seat-inventory:events"
	DefaultMaxLen = 10000
)

type RedisStreamPublisher struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

func NewRedisStreamPublisher(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}

	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	return &RedisStreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish appends the event to the stream, trimming it approximately to
// maxLen entries.
func (p *RedisStreamPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"type":    string(event.Type),
			"show_id": event.ShowID,
			"payload": string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish %s event to %s: %w", event.Type, p.stream, err)
	}

	return nil
}

// NopPublisher drops every event. It is used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error {
	return nil
}
