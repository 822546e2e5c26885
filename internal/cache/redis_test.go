//go:build integration
// +build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/XavierBriggs/Hermes/internal/cache"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/redis/go-redis/v9"
)

// Requires Redis running on localhost:6379.
func newRedisStore(t *testing.T, ttl time.Duration) *cache.Redis {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis not reachable: %v", err)
	}
	client.FlushDB(ctx)

	return cache.NewRedis(client, ttl)
}

// TestCacheContract runs the memory and Redis stores through the same
// set/get/miss/expiry/overwrite table so both backends prove the same
// contract.
func TestCacheContract(t *testing.T) {
	stores := []struct {
		name  string
		build func(t *testing.T, ttl time.Duration) contracts.Cache
	}{
		{"memory", func(t *testing.T, ttl time.Duration) contracts.Cache { return cache.NewMemory(ttl) }},
		{"redis", func(t *testing.T, ttl time.Duration) contracts.Cache { return newRedisStore(t, ttl) }},
	}

	for _, s := range stores {
		t.Run(s.name+"/set get", func(t *testing.T) {
			store := s.build(t, time.Minute)
			ctx := context.Background()

			if err := store.Set(ctx, "key", []byte("value")); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok, err := store.Get(ctx, "key")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !ok || string(got) != "value" {
				t.Errorf("got %q (ok=%v), want value", got, ok)
			}
		})

		t.Run(s.name+"/miss", func(t *testing.T) {
			store := s.build(t, time.Minute)

			_, ok, err := store.Get(context.Background(), "absent")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if ok {
				t.Error("expected miss for absent key")
			}
		})

		t.Run(s.name+"/expiry", func(t *testing.T) {
			store := s.build(t, 100*time.Millisecond)
			ctx := context.Background()

			if err := store.Set(ctx, "key", []byte("value")); err != nil {
				t.Fatalf("set: %v", err)
			}

			time.Sleep(200 * time.Millisecond)

			if _, ok, _ := store.Get(ctx, "key"); ok {
				t.Error("expected expired entry to be treated as absent")
			}
		})

		t.Run(s.name+"/overwrite resets ttl", func(t *testing.T) {
			store := s.build(t, 300*time.Millisecond)
			ctx := context.Background()

			if err := store.Set(ctx, "key", []byte("old")); err != nil {
				t.Fatalf("set: %v", err)
			}

			time.Sleep(200 * time.Millisecond)

			if err := store.Set(ctx, "key", []byte("new")); err != nil {
				t.Fatalf("set: %v", err)
			}

			time.Sleep(200 * time.Millisecond)

			got, ok, _ := store.Get(ctx, "key")
			if !ok {
				t.Fatal("expected entry to survive, TTL should have been reset on overwrite")
			}
			if string(got) != "new" {
				t.Errorf("got %q, want new", got)
			}
		})
	}
}

// TestRedis_KeyNamespace verifies payloads land under the hermes:payload:
// prefix so the store never collides with other keyspaces on a shared Redis.
func TestRedis_KeyNamespace(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis not reachable: %v", err)
	}
	client.FlushDB(ctx)

	store := cache.NewRedis(client, time.Minute)
	if err := store.Set(ctx, "/sports/basketball_nba/odds?regions=us", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, err := client.Get(ctx, "hermes:payload:/sports/basketball_nba/odds?regions=us").Bytes()
	if err != nil {
		t.Fatalf("prefixed key not found: %v", err)
	}
	if string(raw) != `[]` {
		t.Errorf("stored value = %q", raw)
	}

	ttl, err := client.TTL(ctx, "hermes:payload:/sports/basketball_nba/odds?regions=us").Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v, want (0, 1m]", ttl)
	}
}
