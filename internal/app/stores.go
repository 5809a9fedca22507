package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/republic-cup/internal/config"
	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/leaderboard"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/storage"
	basecache "github.com/riskibarqy/republic-cup/internal/platform/cache"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"github.com/riskibarqy/republic-cup/internal/usecase"
)

// Stores holds the repositories selected by STORE_DRIVER plus anything that
// must be closed on shutdown.
type Stores struct {
	Teams       team.Repository
	Matches     match.Repository
	Predictions prediction.Repository
	closers     []func() error
}

// OpenStores builds the repositories. With SeedOnStart the team table is
// bootstrapped and an empty schedule is seeded.
func OpenStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stores, error) {
	stores := &Stores{}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		stores.closers = append(stores.closers, db.Close)
		if cfg.SeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = stores.Close()
				return nil, fmt.Errorf("bootstrap teams: %w", err)
			}
		}
		stores.Teams = postgres.NewTeamRepository(db)
		stores.Matches = postgres.NewMatchRepository(db)
		stores.Predictions = postgres.NewPredictionRepository(db)
	default:
		stores.Teams = memory.NewTeamRepository(memory.SeedTeams())
		stores.Matches = memory.NewMatchRepository(nil)
		stores.Predictions = memory.NewPredictionRepository(nil)
	}

	if cfg.CacheEnabled {
		readCache := basecache.NewStore(cfg.CacheTTL)
		stores.Teams = cache.NewTeamRepository(stores.Teams, readCache)
		stores.Matches = cache.NewMatchRepository(stores.Matches, readCache)
		stores.Predictions = cache.NewPredictionRepository(stores.Predictions, readCache)
	}

	if cfg.SeedOnStart {
		seeded, err := usecase.NewMatchService(stores.Teams, stores.Matches, logger).SeedIfEmpty(ctx)
		if err != nil {
			_ = stores.Close()
			return nil, fmt.Errorf("seed schedule: %w", err)
		}
		if seeded > 0 {
			logger.Info("match schedule seeded", "matches", seeded, "store", cfg.StoreDriver)
		}
	}

	return stores, nil
}

func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// NewLeaderboardStore returns the Redis rank store when enabled, otherwise an
// in-process one.
func NewLeaderboardStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.LeaderboardStore, func() error, error) {
	if !cfg.RedisEnabled {
		return leaderboard.NewMemoryStore(), func() error { return nil }, nil
	}

	client, err := leaderboard.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("redis leaderboard enabled", "key_prefix", cfg.RedisKeyPrefix)
	store := leaderboard.NewRedisStore(client, cfg.RedisKeyPrefix, cfg.RedisCircuit.Build("redis-leaderboard"))
	return store, client.Close, nil
}

// NewObjectStore returns the backup bucket uploader, or nil when no bucket is
// configured.
func NewObjectStore(ctx context.Context, cfg config.Config) (usecase.ObjectStore, error) {
	if cfg.BackupBucket == "" {
		return nil, nil
	}
	store, err := storage.NewS3ObjectStore(ctx, storage.S3Config{
		Bucket:          cfg.BackupBucket,
		Region:          cfg.BackupRegion,
		Endpoint:        cfg.BackupEndpoint,
		AccessKeyID:     cfg.BackupAccessKeyID,
		SecretAccessKey: cfg.BackupSecretAccessKey,
		Prefix:          cfg.BackupPrefix,
	}, cfg.BackupCircuit.Build("backup-bucket"))
	if err != nil {
		return nil, err
	}
	return store, nil
}
