package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/scorerstats"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/riskibarqy/republic-cup/internal/platform/id"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SubmitPredictionInput struct {
	UserName        string
	MatchID         string
	PredictedPlayer string
}

// PredictionEntry is one stored vote annotated with whether it counts.
type PredictionEntry struct {
	Prediction prediction.Prediction
	Duplicate  bool
}

// MatchPredictions is the raw vote history of one match.
type MatchPredictions struct {
	MatchID    string
	Entries    []PredictionEntry
	VoteCounts []scorerstats.FanVote
}

type PredictionService struct {
	refresher      leaderboardRefresher
	teamRepo       team.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *PredictionService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// SetLeaderboardRefresher registers the component that rebuilds the coin
// leaderboard after votes are deleted.
func (s *PredictionService) SetLeaderboardRefresher(refresher leaderboardRefresher) {
	s.refresher = refresher
}

// Submit stores a vote. Earlier votes by the same fan are kept; settlement
// decides which one counts.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit", attribute.String("match.id", input.MatchID))
	defer span.End()

	userName := strings.TrimSpace(input.UserName)
	matchID := strings.TrimSpace(input.MatchID)
	player := strings.TrimSpace(input.PredictedPlayer)
	switch {
	case userName == "":
		return prediction.Prediction{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case utf8.RuneCountInString(userName) > prediction.MaxUserNameLength:
		return prediction.Prediction{}, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, prediction.MaxUserNameLength)
	case matchID == "":
		return prediction.Prediction{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	case player == "":
		return prediction.Prediction{}, fmt.Errorf("%w: predicted player is required", ErrInvalidInput)
	}

	target, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	switch {
	case !target.IsResolved():
		return prediction.Prediction{}, fmt.Errorf("%w: match %s teams are not decided", ErrConflict, matchID)
	case target.PredictionsLocked:
		return prediction.Prediction{}, fmt.Errorf("%w: predictions for match %s are locked", ErrConflict, matchID)
	case match.NormalizeStatus(target.Status) != match.StatusUpcoming:
		return prediction.Prediction{}, fmt.Errorf("%w: match %s has already kicked off", ErrConflict, matchID)
	}

	roster, err := loadRoster(ctx, s.teamRepo)
	if err != nil {
		return prediction.Prediction{}, err
	}
	side, ok := roster.TeamOfPlayer(player, target.Home, target.Away)
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: %s is not playing match %s", ErrInvalidInput, player, matchID)
	}

	predictionID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
	}
	item := prediction.Prediction{
		ID:              predictionID,
		UserName:        userName,
		MatchID:         target.ID,
		MatchNumber:     target.Number,
		PredictedPlayer: player,
		PredictedTeam:   side.ID,
		SubmittedAt:     s.now().UTC(),
	}
	if err := s.predictionRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return prediction.Prediction{}, fmt.Errorf("create prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "prediction submitted",
		"prediction_id", item.ID,
		"match_id", item.MatchID,
		"predicted_player", item.PredictedPlayer,
	)
	return item, nil
}

func (s *PredictionService) List(ctx context.Context) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.List")
	defer span.End()

	items, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// ListByMatch returns the full vote history of a match with duplicates flagged.
func (s *PredictionService) ListByMatch(ctx context.Context, matchID string) (MatchPredictions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByMatch", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchPredictions{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return MatchPredictions{}, fmt.Errorf("get match: %w", err)
	} else if !exists {
		return MatchPredictions{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	items, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return MatchPredictions{}, fmt.Errorf("list match predictions: %w", err)
	}

	_, duplicates := settlement.Dedupe(items)
	duplicateIDs := make(map[string]struct{}, len(duplicates))
	for _, item := range duplicates {
		duplicateIDs[item.ID] = struct{}{}
	}

	history := slices.Clone(items)
	slices.SortStableFunc(history, func(a, b prediction.Prediction) int {
		if c := a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	out := MatchPredictions{
		MatchID:    matchID,
		Entries:    make([]PredictionEntry, 0, len(history)),
		VoteCounts: scorerstats.VoteCounts(items, matchID),
	}
	for _, item := range history {
		_, duplicate := duplicateIDs[item.ID]
		out.Entries = append(out.Entries, PredictionEntry{Prediction: item, Duplicate: duplicate})
	}
	return out, nil
}

func (s *PredictionService) Delete(ctx context.Context, predictionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Delete")
	defer span.End()

	predictionID = strings.TrimSpace(predictionID)
	if predictionID == "" {
		return fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	deleted, err := s.predictionRepo.Delete(ctx, predictionID)
	if err != nil {
		return fmt.Errorf("delete prediction: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: prediction=%s", ErrNotFound, predictionID)
	}

	s.logger.WarnContext(ctx, "prediction deleted", "prediction_id", predictionID)
	s.refreshLeaderboard(ctx)
	return nil
}

func (s *PredictionService) DeleteAll(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.DeleteAll")
	defer span.End()

	count, err := s.predictionRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}

	s.logger.WarnContext(ctx, "all predictions deleted", "count", count)
	s.refreshLeaderboard(ctx)
	return count, nil
}

func (s *PredictionService) refreshLeaderboard(ctx context.Context) {
	refreshLeaderboardStore(ctx, s.refresher, s.logger, "prediction delete")
}
