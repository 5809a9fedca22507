package httpapi

import (
	"context"

	"github.com/riskibarqy/republic-cup/internal/usecase"
)

type contextKey string

const adminClaimsContextKey contextKey = "admin_claims"

func withAdminClaims(ctx context.Context, claims usecase.AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsContextKey, claims)
}

func adminFromContext(ctx context.Context) (usecase.AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsContextKey).(usecase.AdminClaims)
	return claims, ok
}

// adminSessionID is the session id of the calling admin, used in audit logs.
func adminSessionID(ctx context.Context) string {
	claims, ok := adminFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.ID
}
