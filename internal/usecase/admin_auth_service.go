package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/republic-cup/internal/platform/id"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminSessionIssuer   = "republic-cup"
	adminSessionAudience = "republic-cup-admin"
	adminRole            = "admin"
	adminPINLength       = 4
)

// AdminSession is a signed admin token handed out after a correct PIN.
type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// AdminClaims are the JWT claims of an admin session.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AdminAuthConfig struct {
	PIN        string
	Secret     string
	SessionTTL time.Duration
}

// AdminAuthService exchanges the shared admin PIN for a short-lived session
// token. The PIN is only kept as a bcrypt hash.
type AdminAuthService struct {
	pinHash []byte
	secret  []byte
	ttl     time.Duration
	idGen   id.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewAdminAuthService(cfg AdminAuthConfig, idGen id.Generator, logger *logging.Logger) (*AdminAuthService, error) {
	if !isPIN(cfg.PIN) {
		return nil, fmt.Errorf("admin pin must be exactly %d digits", adminPINLength)
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("admin session secret is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin pin: %w", err)
	}

	return &AdminAuthService{
		pinHash: hash,
		secret:  []byte(cfg.Secret),
		ttl:     cfg.SessionTTL,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (s *AdminAuthService) Login(ctx context.Context, pin string) (AdminSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminAuthService.Login")
	defer span.End()

	pin = strings.TrimSpace(pin)
	if !isPIN(pin) {
		return AdminSession{}, fmt.Errorf("%w: pin must be %d digits", ErrInvalidInput, adminPINLength)
	}
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		s.logger.WarnContext(ctx, "admin login rejected")
		return AdminSession{}, fmt.Errorf("%w: wrong pin", ErrUnauthorized)
	}

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return AdminSession{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := AdminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    adminSessionIssuer,
			Subject:   adminRole,
			Audience:  jwt.ClaimStrings{adminSessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AdminSession{}, fmt.Errorf("sign admin session: %w", err)
	}

	s.logger.InfoContext(ctx, "admin session issued", "session_id", sessionID, "expires_at", expiresAt)
	return AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify checks a session token and returns its claims.
func (s *AdminAuthService) Verify(ctx context.Context, token string) (AdminClaims, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AdminAuthService.Verify")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return AdminClaims{}, fmt.Errorf("%w: missing session token", ErrUnauthorized)
	}

	var claims AdminClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminSessionIssuer),
		jwt.WithAudience(adminSessionAudience),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return AdminClaims{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	case err != nil:
		return AdminClaims{}, fmt.Errorf("%w: invalid session token", ErrUnauthorized)
	case !parsed.Valid || claims.Role != adminRole:
		return AdminClaims{}, fmt.Errorf("%w: invalid session token", ErrUnauthorized)
	}
	return claims, nil
}

func isPIN(v string) bool {
	if len(v) != adminPINLength {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
