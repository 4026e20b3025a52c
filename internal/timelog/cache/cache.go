// Package cache provides an optional Redis-backed cache for computed summary
// and statistics responses.
//
// Keys embed a per-owner version counter; invalidation bumps the counter so
// stale entries simply age out of Redis instead of requiring key scans.
// Concurrent recomputes of the same key are collapsed with singleflight.
// Redis being down degrades to computing uncached, never to a failed request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL bounds staleness for entries that survive an invalidation race.
const DefaultTTL = 5 * time.Minute

// SummaryCache caches JSON-encoded responses per owner.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// New constructs a cache over an existing Redis client.
func New(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// GetOrCompute fills dest from the cache, or runs compute and stores the
// result. Returns whether the value came from the cache.
func (c *SummaryCache) GetOrCompute(ctx context.Context, ownerID, suffix string, dest any, compute func(context.Context) (any, error)) (bool, error) {
	key, ok := c.key(ctx, ownerID, suffix)
	if !ok {
		// Redis unreachable; serve uncached.
		v, err := compute(ctx)
		if err != nil {
			return false, err
		}
		return false, assign(dest, v)
	}

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		if json.Unmarshal(raw, dest) == nil {
			return true, nil
		}
		// Corrupt entry: fall through and recompute.
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return false, ctx.Err()
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if raw, merr := json.Marshal(v); merr == nil {
			// Best effort: a failed write just means the next caller recomputes.
			c.client.Set(ctx, key, raw, c.ttl)
		}
		return v, nil
	})
	if err != nil {
		return false, err
	}
	return false, assign(dest, v)
}

// Invalidate bumps the owner's version counter, orphaning every cached entry
// for that owner.
func (c *SummaryCache) Invalidate(ctx context.Context, ownerID string) {
	// Best effort; TTL caps staleness if the bump is lost.
	c.client.Incr(ctx, versionKey(ownerID))
}

func (c *SummaryCache) key(ctx context.Context, ownerID, suffix string) (string, bool) {
	ver, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}
	return fmt.Sprintf("worklog:summary:%s:v%d:%s", ownerID, ver, suffix), true
}

func versionKey(ownerID string) string {
	return "worklog:summary-version:" + ownerID
}

// assign copies a computed value into the caller's destination through a JSON
// round trip, so singleflight followers sharing one result each fill their own
// destination.
func assign(dest, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
