package rdx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tripmind/models"
)

// CachedPlan is what the cache stores for one planning request.
type CachedPlan struct {
	Plan models.NormalizedPlan `json:"plan"`
	Raw  map[string]any        `json:"raw"`
}

// PlanCache keeps normalized plans per request. Identical requests in flight
// share a single backend call.
type PlanCache struct {
	kv     KV
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewPlanCache creates a cache. A nil kv disables storage but keeps
// request collapsing.
func NewPlanCache(kv KV, ttl time.Duration, logger *zap.Logger) *PlanCache {
	return &PlanCache{kv: kv, ttl: ttl, logger: logger}
}

// Key hashes a request body into a cache key.
func Key(req any) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "plan:" + hex.EncodeToString(sum[:])
}

// GetOrFetch returns the cached plan for key or runs fetch. The bool reports
// a cache hit. Redis failures are logged and treated as misses.
func (c *PlanCache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (*CachedPlan, error)) (*CachedPlan, bool, error) {
	if cached, ok := c.load(ctx, key); ok {
		return cached, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		plan, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, plan)
		return plan, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*CachedPlan), false, nil
}

func (c *PlanCache) load(ctx context.Context, key string) (*CachedPlan, bool) {
	if c.kv == nil {
		return nil, false
	}
	s, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("plan cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var cached CachedPlan
	if err := json.Unmarshal([]byte(s), &cached); err != nil {
		c.logger.Warn("plan cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &cached, true
}

func (c *PlanCache) store(ctx context.Context, key string, plan *CachedPlan) {
	if c.kv == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		c.logger.Warn("plan cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Warn("plan cache write failed", zap.String("key", key), zap.Error(err))
	}
}
