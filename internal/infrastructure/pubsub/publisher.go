// Package pubsub publishes real-time payloads to subscribers over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Envelope is the message body every subscriber receives.
type Envelope struct {
	Type        string `json:"type"`
	Data        any    `json:"data"`
	MutatorID   string `json:"mutatorId,omitempty"`
	OperationID string `json:"operationId,omitempty"`
}

// Publisher sends an envelope on a topic scoped to one subscriber.
type Publisher interface {
	Publish(ctx context.Context, channel, subscriberID string, msg Envelope) error
}

// Channel returns the Redis channel name for a subscriber, e.g. "notification:<userId>".
func Channel(channel, subscriberID string) string {
	return channel + ":" + subscriberID
}

// RedisPublisher publishes JSON envelopes with PUBLISH.
type RedisPublisher struct {
	Client redis.UniversalClient
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, subscriberID string, msg Envelope) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", msg.Type, err)
	}
	if err := p.Client.Publish(ctx, Channel(channel, subscriberID), body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", Channel(channel, subscriberID), err)
	}
	return nil
}
