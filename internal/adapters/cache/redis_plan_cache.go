package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-planner-service/internal/platform/obs"
)

// RedisPlanCache is a Redis-backed cache for rendered day plans.
//
// Planning is randomized (centroid seeding), so caching also pins one answer
// per request fingerprint for the TTL instead of re-rolling on every call.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisPlanCache{Client: client, TTL: ttl}
}

func planKey(fingerprint string) string {
	return "plan:" + fingerprint
}

// Get fetches a cached plan payload. A miss is (nil, false, nil).
func (c *RedisPlanCache) Get(ctx context.Context, fingerprint string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}
	if fingerprint == "" {
		return nil, false, errors.New("get plan cache: fingerprint must not be empty")
	}

	payload, err := c.Client.Get(ctx, planKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: fingerprint=%q: %w", fingerprint, err)
	}

	return payload, true, nil
}

// Put stores a plan payload under the fingerprint for the configured TTL.
func (c *RedisPlanCache) Put(ctx context.Context, fingerprint string, payload []byte) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if fingerprint == "" {
		return errors.New("put plan cache: fingerprint must not be empty")
	}
	if len(payload) == 0 {
		return errors.New("put plan cache: payload must not be empty")
	}

	if err := c.Client.Set(ctx, planKey(fingerprint), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan cache: fingerprint=%q: %w", fingerprint, err)
	}

	return nil
}
