package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/platform/resilience"
)

// RedisStore keeps the coin leaderboard in a Redis hash keyed by user key.
// Replace swaps the whole hash in one MULTI block so readers never see a
// half-written board.
type RedisStore struct {
	client  redis.UniversalClient
	key     string
	breaker *resilience.CircuitBreaker
}

type redisEntry struct {
	Rank     int    `json:"rank"`
	UserKey  string `json:"userKey"`
	UserName string `json:"userName"`
	Coins    int    `json:"coins"`
	Wins     int    `json:"wins"`
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client redis.UniversalClient, keyPrefix string, breaker *resilience.CircuitBreaker) *RedisStore {
	prefix := strings.TrimSuffix(strings.TrimSpace(keyPrefix), ":")
	key := "leaderboard"
	if prefix != "" {
		key = prefix + ":leaderboard"
	}
	return &RedisStore{
		client:  client,
		key:     key,
		breaker: breaker,
	}
}

func (s *RedisStore) Replace(ctx context.Context, entries []settlement.LeaderboardEntry) error {
	fields := make([]any, 0, len(entries)*2)
	for _, entry := range entries {
		raw, err := sonic.Marshal(redisEntry(entry))
		if err != nil {
			return fmt.Errorf("encode leaderboard entry %s: %w", entry.UserKey, err)
		}
		fields = append(fields, entry.UserKey, string(raw))
	}

	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.key)
			if len(fields) > 0 {
				pipe.HSet(ctx, s.key, fields...)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("replace leaderboard: %w", err)
		}
		return nil
	})
}

func (s *RedisStore) Get(ctx context.Context, userKey string) (settlement.LeaderboardEntry, bool, error) {
	var (
		raw   string
		found bool
	)
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		value, err := s.client.HGet(ctx, s.key, userKey).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get leaderboard entry: %w", err)
		}
		raw, found = value, true
		return nil
	})
	if err != nil || !found {
		return settlement.LeaderboardEntry{}, false, err
	}

	var entry redisEntry
	if err := sonic.UnmarshalString(raw, &entry); err != nil {
		return settlement.LeaderboardEntry{}, false, fmt.Errorf("decode leaderboard entry %s: %w", userKey, err)
	}
	return settlement.LeaderboardEntry(entry), true, nil
}
