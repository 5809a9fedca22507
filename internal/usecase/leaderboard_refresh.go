package usecase

import (
	"context"

	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

type leaderboardRefresher interface {
	RefreshLeaderboard(ctx context.Context) ([]settlement.LeaderboardEntry, error)
}

// refreshLeaderboardStore rewrites the rank store after a change that can move
// coins. It is best effort: the leaderboard itself is always rebuilt from
// stored matches and only rank lookups read the store.
func refreshLeaderboardStore(ctx context.Context, refresher leaderboardRefresher, logger *logging.Logger, after string) {
	if refresher == nil {
		return
	}
	if _, err := refresher.RefreshLeaderboard(ctx); err != nil {
		logger.WarnContext(ctx, "refresh leaderboard failed", "after", after, "error", err)
	}
}
