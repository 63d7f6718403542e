package mq

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler processes one decoded event.
type Handler func(ctx context.Context, evt TripEvent) error

// Worker consumes trip events and keeps per-kind counts.
type Worker struct {
	logger  *zap.Logger
	handler Handler

	mu     sync.Mutex
	counts map[string]int
}

// NewWorker creates a worker. A nil handler only logs and counts.
func NewWorker(logger *zap.Logger, handler Handler) *Worker {
	return &Worker{logger: logger, handler: handler, counts: map[string]int{}}
}

// Subscribe runs the worker on the Redis trip channel until ctx ends.
func (w *Worker) Subscribe(ctx context.Context, c *redis.Client) error {
	sub := c.Subscribe(ctx, Channel)
	defer sub.Close()

	msgs := make(chan string)
	go func() {
		defer close(msgs)
		for m := range sub.Channel() {
			select {
			case msgs <- m.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	w.logger.Info("listening for trip events", zap.String("channel", Channel))
	return w.Run(ctx, msgs)
}

// Run drains payloads until ctx ends or the channel closes.
func (w *Worker) Run(ctx context.Context, payloads <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-payloads:
			if !ok {
				return nil
			}
			w.process(ctx, p)
		}
	}
}

func (w *Worker) process(ctx context.Context, payload string) {
	var evt TripEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		w.logger.Warn("bad trip event", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.counts[evt.Kind]++
	w.mu.Unlock()

	switch evt.Kind {
	case KindSchemaDrift:
		w.logger.Warn("plan schema drift", zap.Strings("missing", evt.Missing))
	default:
		w.logger.Info("trip event", zap.String("kind", evt.Kind), zap.String("trip_id", evt.TripID), zap.String("user_id", evt.UserID))
	}

	if w.handler == nil {
		return
	}
	if err := w.handler(ctx, evt); err != nil {
		w.logger.Error("handle trip event", zap.String("kind", evt.Kind), zap.Error(err))
	}
}

// Count returns how many events of kind were processed.
func (w *Worker) Count(kind string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counts[kind]
}
