// Package mq carries trip lifecycle events over Redis pub/sub.
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the pub/sub channel trip events go to.
const Channel = "trip-events"

// Event kinds.
const (
	KindSaved       = "saved"
	KindDeleted     = "deleted"
	KindSchemaDrift = "schema-drift"
)

// TripEvent is one published message.
type TripEvent struct {
	Kind    string    `json:"kind"`
	TripID  string    `json:"trip_id,omitempty"`
	UserID  string    `json:"user_id,omitempty"`
	Missing []string  `json:"missing,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher is the publishing half of a pub/sub connection.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct {
	c *redis.Client
}

// NewRedisPublisher publishes through a Redis client.
func NewRedisPublisher(c *redis.Client) Publisher {
	return redisPublisher{c: c}
}

func (p redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.c.Publish(ctx, channel, payload).Err()
}

// Emitter publishes trip events. Failures are logged and never reach the
// caller's request path.
type Emitter struct {
	pub    Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewEmitter creates an emitter. A nil publisher makes it log-only.
func NewEmitter(pub Publisher, logger *zap.Logger) *Emitter {
	return &Emitter{pub: pub, logger: logger, now: time.Now}
}

// Emit stamps and publishes evt.
func (e *Emitter) Emit(ctx context.Context, evt TripEvent) {
	if evt.At.IsZero() {
		evt.At = e.now().UTC()
	}
	if e.pub == nil {
		e.logger.Debug("event not published, no broker", zap.String("kind", evt.Kind))
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		e.logger.Warn("marshal event", zap.String("kind", evt.Kind), zap.Error(err))
		return
	}
	if err := e.pub.Publish(ctx, Channel, data); err != nil {
		e.logger.Warn("publish event", zap.String("kind", evt.Kind), zap.String("trip_id", evt.TripID), zap.Error(err))
	}
}

// Saved announces a newly stored trip.
func (e *Emitter) Saved(ctx context.Context, userID, tripID string) {
	e.Emit(ctx, TripEvent{Kind: KindSaved, UserID: userID, TripID: tripID})
}

// Deleted announces a removed trip.
func (e *Emitter) Deleted(ctx context.Context, userID, tripID string) {
	e.Emit(ctx, TripEvent{Kind: KindDeleted, UserID: userID, TripID: tripID})
}

// SchemaDrift reports plan fields the normalizer could not find.
func (e *Emitter) SchemaDrift(ctx context.Context, missing []string) {
	if len(missing) == 0 {
		return
	}
	e.Emit(ctx, TripEvent{Kind: KindSchemaDrift, Missing: missing})
}
