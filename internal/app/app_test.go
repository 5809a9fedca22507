package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/config"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		StoreDriver:        config.StoreMemory,
		SeedOnStart:        true,
		CacheEnabled:       true,
		CacheTTL:           time.Second,
		AdminPIN:           "1234",
		AdminSessionSecret: "app-test-secret",
		AdminSessionTTL:    time.Hour,
		BackupWorkers:      2,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestNewMemoryApp(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected seeded schedule to be served, got %d", rec.Code)
	}
}

func TestNewRejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestOpenStoresSeedsOnce(t *testing.T) {
	ctx := context.Background()
	stores, err := OpenStores(ctx, memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	defer stores.Close()

	n, err := stores.Matches.Count(ctx)
	if err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if n != 13 {
		t.Fatalf("expected 13 seeded matches, got %d", n)
	}
}
