package leaderboard

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/platform/resilience"
)

func newTestRedisStore(t *testing.T, breaker *resilience.CircuitBreaker) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "republic-cup:test:", breaker), server
}

func TestRedisStoreReplaceAndGet(t *testing.T) {
	store, server := newTestRedisStore(t, nil)
	ctx := context.Background()

	entries := []settlement.LeaderboardEntry{
		{Rank: 1, UserKey: "ana", UserName: "Ana", Coins: 500, Wins: 1},
		{Rank: 2, UserKey: "budi", UserName: "Budi", Coins: 333, Wins: 1},
	}
	if err := store.Replace(ctx, entries); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !server.Exists("republic-cup:test:leaderboard") {
		t.Fatalf("expected leaderboard hash under prefixed key, keys=%v", server.Keys())
	}

	got, found, err := store.Get(ctx, "budi")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected budi to be found")
	}
	if got != entries[1] {
		t.Fatalf("unexpected entry: %+v", got)
	}

	fields, err := server.HKeys("republic-cup:test:leaderboard")
	if err != nil {
		t.Fatalf("hkeys: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 entries, got %v", fields)
	}
}

func TestRedisStoreReplaceDropsStaleEntries(t *testing.T) {
	store, _ := newTestRedisStore(t, nil)
	ctx := context.Background()

	if err := store.Replace(ctx, []settlement.LeaderboardEntry{{Rank: 1, UserKey: "ana", UserName: "Ana", Coins: 1000, Wins: 1}}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := store.Replace(ctx, nil); err != nil {
		t.Fatalf("empty replace: %v", err)
	}

	_, found, err := store.Get(ctx, "ana")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected stale entry to be removed")
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newTestRedisStore(t, nil)

	_, found, err := store.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected miss")
	}
}

func TestRedisStoreBreakerOpensOnFailures(t *testing.T) {
	breaker := resilience.NewCircuitBreaker("leaderboard", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		HalfOpenMaxReq:   1,
	})
	store, server := newTestRedisStore(t, breaker)
	server.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, _, err := store.Get(ctx, "ana"); err == nil {
			t.Fatalf("expected error from closed server on attempt %d", i+1)
		}
	}

	_, _, err := store.Get(ctx, "ana")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Replace(ctx, []settlement.LeaderboardEntry{{Rank: 1, UserKey: "ana", UserName: "Ana", Coins: 10}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, found, _ := store.Get(ctx, "ana")
	if !found || got.Coins != 10 {
		t.Fatalf("unexpected lookup: found=%v entry=%+v", found, got)
	}
	if _, found, _ := store.Get(ctx, "budi"); found {
		t.Fatalf("expected miss for budi")
	}
}
