package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LeaderboardStore keeps the latest coin leaderboard for rank lookups.
type LeaderboardStore interface {
	Replace(ctx context.Context, entries []settlement.LeaderboardEntry) error
	Get(ctx context.Context, userKey string) (settlement.LeaderboardEntry, bool, error)
}

type SettlementService struct {
	teamRepo       team.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	store          LeaderboardStore
	logger         *logging.Logger
}

func NewSettlementService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	store LeaderboardStore,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		store:          store,
		logger:         logger,
	}
}

// SettleMatch settles one match against the current vote snapshot. An
// unpublished match yields settlement.StateNotSettled, not an error.
func (s *SettlementService) SettleMatch(ctx context.Context, matchID string) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleMatch", attribute.String("match.id", matchID))
	defer span.End()

	target, err := s.getMatch(ctx, matchID)
	if err != nil {
		return settlement.Result{}, err
	}
	items, err := s.predictionRepo.ListByMatch(ctx, target.ID)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("list match predictions: %w", err)
	}
	return settlement.Settle(target, items), nil
}

// PublishManOfTheMatch records the award of a finished match, stores the
// winning fans and locks further votes.
func (s *SettlementService) PublishManOfTheMatch(ctx context.Context, matchID, player string) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.PublishManOfTheMatch", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	player = strings.TrimSpace(player)
	if matchID == "" {
		return settlement.Result{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if player == "" {
		return settlement.Result{}, fmt.Errorf("%w: man of the match is required", ErrInvalidInput)
	}

	roster, err := loadRoster(ctx, s.teamRepo)
	if err != nil {
		return settlement.Result{}, err
	}
	items, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("list match predictions: %w", err)
	}

	var result settlement.Result
	_, err = s.matchRepo.Update(ctx, matchID, func(m *match.Match) error {
		if !m.IsFinished() {
			return fmt.Errorf("%w: match %s is not finished", ErrConflict, m.ID)
		}
		if player != match.RefereeDecision {
			if _, ok := roster.TeamOfPlayer(player, m.Home, m.Away); !ok {
				return fmt.Errorf("%w: %s did not play match %s", ErrInvalidInput, player, m.ID)
			}
		}
		m.ManOfTheMatch = player
		result = settlement.Settle(*m, items)
		m.MoMWinners = result.WinnerNames()
		m.PredictionsLocked = true
		m.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return settlement.Result{}, translateMatchUpdateError(err, matchID)
	}

	s.logger.InfoContext(ctx, "man of the match published",
		"match_id", matchID,
		"player", player,
		"state", string(result.State),
		"winners", len(result.Winners),
		"share", result.Share,
	)
	if _, err := s.RefreshLeaderboard(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh leaderboard after publish failed", "match_id", matchID, "error", err)
	}
	return result, nil
}

// Leaderboard rebuilds the coin leaderboard from every published match.
func (s *SettlementService) Leaderboard(ctx context.Context) ([]settlement.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.Leaderboard")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	items, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return settlement.Leaderboard(matches, items), nil
}

// RefreshLeaderboard recomputes the leaderboard and writes it to the store.
func (s *SettlementService) RefreshLeaderboard(ctx context.Context) ([]settlement.LeaderboardEntry, error) {
	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return entries, nil
	}
	if err := s.store.Replace(ctx, entries); err != nil {
		return entries, fmt.Errorf("%w: replace leaderboard: %v", ErrDependencyUnavailable, err)
	}
	return entries, nil
}

// UserStanding looks up one fan's leaderboard entry. The store answers first;
// on a miss or store failure the leaderboard is recomputed.
func (s *SettlementService) UserStanding(ctx context.Context, userName string) (settlement.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.UserStanding")
	defer span.End()

	key := prediction.NormalizeUserKey(userName)
	if key == "" {
		return settlement.LeaderboardEntry{}, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}

	if s.store != nil {
		entry, found, err := s.store.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "leaderboard store lookup failed", "user_key", key, "error", err)
		case found:
			return entry, nil
		}
	}

	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return settlement.LeaderboardEntry{}, err
	}
	for _, entry := range entries {
		if entry.UserKey == key {
			return entry, nil
		}
	}
	return settlement.LeaderboardEntry{}, fmt.Errorf("%w: no winnings for %s", ErrNotFound, key)
}

func (s *SettlementService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}
