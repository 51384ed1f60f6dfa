package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPlanCache(client, ttl), srv
}

func TestPlanCacheMissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "fp1"); err != nil || ok {
		t.Fatalf("cold get: ok=%v err=%v, want miss without error", ok, err)
	}

	payload := []byte(`{"num_days":2}`)
	if err := c.Put(ctx, "fp1", payload); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "fp1")
	if err != nil || !ok {
		t.Fatalf("warm get: ok=%v err=%v, want hit", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestPlanCacheExpires(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "fp2", []byte("x")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, "fp2"); err != nil || ok {
		t.Fatalf("after TTL: ok=%v err=%v, want miss", ok, err)
	}
}

func TestPlanCacheValidation(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Fatal("get with empty fingerprint should fail")
	}
	if err := c.Put(ctx, "", []byte("x")); err == nil {
		t.Fatal("put with empty fingerprint should fail")
	}
	if err := c.Put(ctx, "fp3", nil); err == nil {
		t.Fatal("put with empty payload should fail")
	}
}

func TestPlanCacheDefaultTTL(t *testing.T) {
	c, _ := newTestCache(t, 0)
	if c.TTL != 15*time.Minute {
		t.Fatalf("default TTL = %v, want 15m", c.TTL)
	}
}
