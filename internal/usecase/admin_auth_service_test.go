package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/platform/id"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

func newTestAdminAuth(t *testing.T, now time.Time) *AdminAuthService {
	t.Helper()

	svc, err := NewAdminAuthService(AdminAuthConfig{
		PIN:        "5555",
		Secret:     "test-secret",
		SessionTTL: time.Hour,
	}, id.NewSequence("session-1", "session-2"), logging.NewNop())
	if err != nil {
		t.Fatalf("new admin auth: %v", err)
	}
	svc.now = fixedClock(now)
	return svc
}

func TestNewAdminAuthService_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  AdminAuthConfig
	}{
		{name: "short pin", cfg: AdminAuthConfig{PIN: "555", Secret: "s"}},
		{name: "non digit pin", cfg: AdminAuthConfig{PIN: "55a5", Secret: "s"}},
		{name: "missing secret", cfg: AdminAuthConfig{PIN: "5555"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAdminAuthService(tc.cfg, nil, nil); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestAdminAuthService_LoginAndVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 29, 17, 0, 0, 0, time.UTC)
	svc := newTestAdminAuth(t, now)

	session, err := svc.Login(ctx, "5555")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", session.ExpiresAt)
	}

	claims, err := svc.Verify(ctx, session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != "session-1" || claims.Role != adminRole {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	svc.now = fixedClock(now.Add(2 * time.Hour))
	if _, err := svc.Verify(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestAdminAuthService_LoginRejected(t *testing.T) {
	t.Parallel()

	svc := newTestAdminAuth(t, time.Now())

	if _, err := svc.Login(context.Background(), "1234"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "12"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminAuthService_VerifyRejectsForeignToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	svc := newTestAdminAuth(t, now)
	other, err := NewAdminAuthService(AdminAuthConfig{PIN: "5555", Secret: "other-secret"}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new admin auth: %v", err)
	}

	session, err := other.Login(ctx, "5555")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Verify(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}
