package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

func seedVotes(t *testing.T, repos testRepos, votes ...prediction.Prediction) {
	t.Helper()

	base := time.Date(2026, 1, 29, 16, 0, 0, 0, time.UTC)
	for i, vote := range votes {
		vote.SubmittedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repos.predictions.Create(context.Background(), vote); err != nil {
			t.Fatalf("seed vote %s: %v", vote.ID, err)
		}
	}
}

func TestSettlementService_PublishManOfTheMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	seedVotes(t, repos,
		prediction.Prediction{ID: "p1", UserName: "Ana", MatchID: "match-1", PredictedPlayer: "Ninad"},
		prediction.Prediction{ID: "p2", UserName: "ana", MatchID: "match-1", PredictedPlayer: "Raghu"},
		prediction.Prediction{ID: "p3", UserName: "Budi", MatchID: "match-1", PredictedPlayer: "Ninad"},
		prediction.Prediction{ID: "p4", UserName: "Citra", MatchID: "match-1", PredictedPlayer: "Ninad"},
		prediction.Prediction{ID: "p5", UserName: "Dewi", MatchID: "match-1", PredictedPlayer: "Raghu"},
	)
	store := newFakeLeaderboardStore()
	svc := NewSettlementService(repos.teams, repos.matches, repos.predictions, store, logging.NewNop())

	if _, err := svc.PublishManOfTheMatch(ctx, "match-1", "Ninad"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before full time, got %v", err)
	}

	repos.setStatus(t, "match-1", match.StatusFinished)
	if _, err := svc.PublishManOfTheMatch(ctx, "match-1", "Kushal"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for player outside the match, got %v", err)
	}

	result, err := svc.PublishManOfTheMatch(ctx, "match-1", "Ninad")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if result.State != settlement.StateSettled || len(result.Winners) != 3 {
		t.Fatalf("unexpected result: state=%s winners=%d", result.State, len(result.Winners))
	}
	if result.Share != 333 || result.TotalDistributed != 999 {
		t.Fatalf("unexpected payout: share=%d total=%d", result.Share, result.TotalDistributed)
	}
	if len(result.Duplicates) != 1 || result.Duplicates[0].ID != "p2" {
		t.Fatalf("unexpected duplicates: %+v", result.Duplicates)
	}

	stored, _, _ := repos.matches.GetByID(ctx, "match-1")
	if !stored.PredictionsLocked || stored.ManOfTheMatch != "Ninad" {
		t.Fatalf("publish did not persist: %+v", stored)
	}
	if len(stored.MoMWinners) != 3 || stored.MoMWinners[0] != "Ana" {
		t.Fatalf("unexpected stored winners: %v", stored.MoMWinners)
	}

	if store.replaced != 1 {
		t.Fatalf("leaderboard store should be refreshed once, got %d", store.replaced)
	}
	entry, err := svc.UserStanding(ctx, " ANA")
	if err != nil {
		t.Fatalf("user standing: %v", err)
	}
	if entry.Coins != 333 || entry.Wins != 1 || entry.Rank != 1 {
		t.Fatalf("unexpected standing: %+v", entry)
	}
	if _, err := svc.UserStanding(ctx, "Dewi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for fan without winnings, got %v", err)
	}
}

func TestSettlementService_RefereeDecisionPaysNobody(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	repos.setStatus(t, "match-1", match.StatusFinished)
	seedVotes(t, repos, prediction.Prediction{ID: "p1", UserName: "Ana", MatchID: "match-1", PredictedPlayer: "Ninad"})
	svc := NewSettlementService(repos.teams, repos.matches, repos.predictions, nil, logging.NewNop())

	result, err := svc.PublishManOfTheMatch(ctx, "match-1", match.RefereeDecision)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if result.State != settlement.StateNoWinners || result.TotalDistributed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	entries, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", entries)
	}
}

func TestSettlementService_SettleMatchUnpublished(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	svc := NewSettlementService(repos.teams, repos.matches, repos.predictions, nil, logging.NewNop())

	result, err := svc.SettleMatch(context.Background(), "match-2")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if result.State != settlement.StateNotSettled {
		t.Fatalf("unexpected state: %s", result.State)
	}
	if _, err := svc.SettleMatch(context.Background(), "match-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettlementService_UserStandingFallsBackWhenStoreFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	repos.setStatus(t, "match-1", match.StatusFinished)
	seedVotes(t, repos, prediction.Prediction{ID: "p1", UserName: "Ana", MatchID: "match-1", PredictedPlayer: "Ninad"})
	store := newFakeLeaderboardStore()
	store.err = errors.New("redis down")
	svc := NewSettlementService(repos.teams, repos.matches, repos.predictions, store, logging.NewNop())

	if _, err := svc.PublishManOfTheMatch(ctx, "match-1", "Ninad"); err != nil {
		t.Fatalf("publish should not fail on store errors: %v", err)
	}
	if _, err := svc.RefreshLeaderboard(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	entry, err := svc.UserStanding(ctx, "ana")
	if err != nil {
		t.Fatalf("user standing: %v", err)
	}
	if entry.Coins != settlement.PrizePool {
		t.Fatalf("unexpected coins: %d", entry.Coins)
	}
}

func TestMatchService_ResetDropsStoredWinnings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepos(t)
	seedVotes(t, repos, prediction.Prediction{ID: "p1", UserName: "Ana", MatchID: "match-1", PredictedPlayer: "Ninad"})
	store := newFakeLeaderboardStore()
	settle := NewSettlementService(repos.teams, repos.matches, repos.predictions, store, logging.NewNop())
	matches := NewMatchService(repos.teams, repos.matches, logging.NewNop())
	matches.SetLeaderboardRefresher(settle)

	repos.setStatus(t, "match-1", match.StatusFinished)
	if _, err := settle.PublishManOfTheMatch(ctx, "match-1", "Ninad"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if entry, err := settle.UserStanding(ctx, "ana"); err != nil || entry.Coins != 1000 {
		t.Fatalf("expected 1000 coins before reset, got %+v err=%v", entry, err)
	}

	if _, err := matches.Reset(ctx, "match-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if store.replaced != 2 {
		t.Fatalf("reset should rewrite the leaderboard store, replaced=%d", store.replaced)
	}
	if _, err := settle.UserStanding(ctx, "ana"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reset, got %v", err)
	}
	board, err := settle.Leaderboard(ctx)
	if err != nil || len(board) != 0 {
		t.Fatalf("expected empty leaderboard after reset, got %+v err=%v", board, err)
	}
}
