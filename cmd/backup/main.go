package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/republic-cup/internal/app"
	"github.com/riskibarqy/republic-cup/internal/config"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"github.com/riskibarqy/republic-cup/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.StoreDriver != config.StorePostgres {
		fmt.Fprintln(os.Stderr, "backup and restore need STORE_DRIVER=postgres")
		os.Exit(1)
	}
	cfg.SeedOnStart = false
	cfg.CacheEnabled = false

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Console: true, Service: "republic-cup-backup", Env: cfg.AppEnv})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "backup":
		err = runBackup(ctx, cfg, logger, os.Args[2:])
	case "restore":
		err = runRestore(ctx, cfg, logger, os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(os.Args[1]+" failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runBackup(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	upload := fs.Bool("upload", false, "also upload the file to BACKUP_BUCKET")
	outDir := fs.String("out", ".", "directory the backup file is written to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, closeStores, err := newBackupService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	file, err := svc.Backup(ctx, *upload)
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("backup written", "path", path, "matches", file.Matches, "predictions", file.Predictions, "uploaded", *upload)
	return nil
}

func runRestore(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("restore requires exactly one backup file")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	snapshot, err := usecase.DecodeSnapshot(data)
	if err != nil {
		return err
	}

	svc, closeStores, err := newBackupService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	result, err := svc.Restore(ctx, snapshot)
	if err != nil {
		return err
	}
	logger.Info("backup restored", "file", args[0], "matches", result.Matches, "predictions", result.Predictions)
	return nil
}

// newBackupService wires the backup service against the configured stores.
// Restores also rewrite the leaderboard store so rank lookups match the
// restored results.
func newBackupService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.BackupService, func(), error) {
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	objects, err := app.NewObjectStore(ctx, cfg)
	if err != nil {
		_ = stores.Close()
		return nil, nil, err
	}
	rankStore, closeRankStore, err := app.NewLeaderboardStore(ctx, cfg, logger)
	if err != nil {
		_ = stores.Close()
		return nil, nil, err
	}

	svc := usecase.NewBackupService(stores.Matches, stores.Predictions, objects, cfg.BackupWorkers, logger)
	svc.SetLeaderboardRefresher(usecase.NewSettlementService(stores.Teams, stores.Matches, stores.Predictions, rankStore, logger))
	return svc, func() {
		_ = closeRankStore()
		_ = stores.Close()
	}, nil
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <backup|restore> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s backup\n", name)
	fmt.Fprintf(os.Stderr, "  %s backup -upload -out ./backups\n", name)
	fmt.Fprintf(os.Stderr, "  %s restore backup_2026-03-01T18-30-00.json\n", name)
}
