package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/republic-cup/internal/config"
	"github.com/riskibarqy/republic-cup/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/republic-cup/internal/platform/id"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"github.com/riskibarqy/republic-cup/internal/usecase"
)

// App is the wired API process.
type App struct {
	Server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{closers: []func() error{stores.Close}}

	rankStore, closeRankStore, err := NewLeaderboardStore(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("leaderboard store: %w", err)
	}
	app.closers = append(app.closers, closeRankStore)

	objects, err := NewObjectStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("backup storage: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	adminSvc, err := usecase.NewAdminAuthService(usecase.AdminAuthConfig{
		PIN:        cfg.AdminPIN,
		Secret:     cfg.AdminSessionSecret,
		SessionTTL: cfg.AdminSessionTTL,
	}, ids, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	matchSvc := usecase.NewMatchService(stores.Teams, stores.Matches, logger)
	predictionSvc := usecase.NewPredictionService(stores.Teams, stores.Matches, stores.Predictions, ids, logger)
	settlementSvc := usecase.NewSettlementService(stores.Teams, stores.Matches, stores.Predictions, rankStore, logger)
	predictionSvc.SetLeaderboardRefresher(settlementSvc)
	matchSvc.SetLeaderboardRefresher(settlementSvc)
	backupSvc := usecase.NewBackupService(stores.Matches, stores.Predictions, objects, cfg.BackupWorkers, logger)
	backupSvc.SetLeaderboardRefresher(settlementSvc)

	if _, err := settlementSvc.RefreshLeaderboard(ctx); err != nil {
		logger.Warn("initial leaderboard refresh failed", "error", err)
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Teams:       usecase.NewTeamService(stores.Teams),
		Matches:     matchSvc,
		Predictions: predictionSvc,
		Settlement:  settlementSvc,
		Stats:       usecase.NewStatsService(stores.Teams, stores.Matches, stores.Predictions),
		AdminAuth:   adminSvc,
		Backup:      backupSvc,
	}, logger)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, adminSvc, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

// Close releases the stores in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
