package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AddGoalInput struct {
	MatchID string
	TeamID  string
	Player  string
	Assist  string
}

type MatchService struct {
	refresher leaderboardRefresher
	teamRepo  team.Repository
	matchRepo match.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(teamRepo team.Repository, matchRepo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// SetLeaderboardRefresher registers the component that rebuilds the coin
// leaderboard after a published result is cleared.
func (s *MatchService) SetLeaderboardRefresher(refresher leaderboardRefresher) {
	s.refresher = refresher
}

// List returns every match in match number order.
func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return match.SortedByNumber(items), nil
}

// ListUpcoming returns matches that have not kicked off and whose teams are known.
func (s *MatchService) ListUpcoming(ctx context.Context) ([]match.Match, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if match.NormalizeStatus(item.Status) == match.StatusUpcoming && item.IsResolved() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", attribute.String("match.id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// SeedIfEmpty stores the tournament schedule when no match exists yet.
func (s *MatchService) SeedIfEmpty(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SeedIfEmpty")
	defer span.End()

	count, err := s.matchRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := s.now().UTC()
	items := match.Schedule()
	for i := range items {
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	if err := s.matchRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("seed matches: %w", err)
	}

	s.logger.InfoContext(ctx, "match schedule seeded", "count", len(items))
	return len(items), nil
}

// UpdateStatus moves a match between upcoming, live and finished.
// Finished is terminal and an unresolved fixture cannot kick off.
func (s *MatchService) UpdateStatus(ctx context.Context, matchID, status string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus", attribute.String("match.id", matchID))
	defer span.End()

	status = match.NormalizeStatus(status)
	if !match.IsValidStatus(status) {
		return match.Match{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	updated, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		current := match.NormalizeStatus(m.Status)
		if current == status {
			return nil
		}
		if current == match.StatusFinished {
			return fmt.Errorf("%w: match %s is already finished", ErrConflict, m.ID)
		}
		if status != match.StatusUpcoming && !m.IsResolved() {
			return fmt.Errorf("%w: match %s teams are not decided", ErrConflict, m.ID)
		}
		m.Status = status
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match status updated", "match_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// AssignTeams fills the sides of a fixture whose teams were not known at
// setup, such as the final.
func (s *MatchService) AssignTeams(ctx context.Context, matchID, homeID, awayID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AssignTeams", attribute.String("match.id", matchID))
	defer span.End()

	homeID, awayID = strings.TrimSpace(homeID), strings.TrimSpace(awayID)
	if homeID == awayID {
		return match.Match{}, fmt.Errorf("%w: home and away must differ", ErrInvalidInput)
	}
	roster, err := loadRoster(ctx, s.teamRepo)
	if err != nil {
		return match.Match{}, err
	}
	if !roster.Has(homeID) || !roster.Has(awayID) {
		return match.Match{}, fmt.Errorf("%w: unknown team", ErrInvalidInput)
	}

	return s.mutate(ctx, matchID, func(m *match.Match) error {
		if match.NormalizeStatus(m.Status) != match.StatusUpcoming || len(m.Goals) > 0 {
			return fmt.Errorf("%w: match %s has already started", ErrConflict, m.ID)
		}
		m.Home = homeID
		m.Away = awayID
		return nil
	})
}

// AddGoal appends one entry to the goal log. The scorer must belong to the
// credited side unless it is an own goal.
func (s *MatchService) AddGoal(ctx context.Context, input AddGoalInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddGoal", attribute.String("match.id", input.MatchID))
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Player = strings.TrimSpace(input.Player)
	input.Assist = strings.TrimSpace(input.Assist)
	if input.Player == "" {
		return match.Match{}, fmt.Errorf("%w: player is required", ErrInvalidInput)
	}
	if input.Assist != "" && input.Assist == input.Player {
		return match.Match{}, fmt.Errorf("%w: a player cannot assist their own goal", ErrInvalidInput)
	}

	roster, err := loadRoster(ctx, s.teamRepo)
	if err != nil {
		return match.Match{}, err
	}
	if input.Player != match.OwnGoal && !roster.HasPlayer(input.TeamID, input.Player) {
		return match.Match{}, fmt.Errorf("%w: %s is not in the squad of %s", ErrInvalidInput, input.Player, input.TeamID)
	}
	if input.Player == match.OwnGoal && input.Assist != "" {
		return match.Match{}, fmt.Errorf("%w: own goals have no assist", ErrInvalidInput)
	}
	if input.Assist != "" && !roster.HasPlayer(input.TeamID, input.Assist) {
		return match.Match{}, fmt.Errorf("%w: %s is not in the squad of %s", ErrInvalidInput, input.Assist, input.TeamID)
	}

	now := s.now().UTC()
	updated, err := s.mutate(ctx, input.MatchID, func(m *match.Match) error {
		if err := requireKickedOff(*m); err != nil {
			return err
		}
		if !m.HasSide(input.TeamID) {
			return fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, input.TeamID, m.ID)
		}
		m.Goals = append(m.Goals, match.Goal{
			Player:    input.Player,
			Team:      input.TeamID,
			Assist:    input.Assist,
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "goal recorded",
		"match_id", updated.ID,
		"team_id", input.TeamID,
		"player", input.Player,
		"score", fmt.Sprintf("%d-%d", updated.ScoreHome, updated.ScoreAway),
	)
	return updated, nil
}

// RemoveLastGoal drops the most recent goal credited to teamID.
func (s *MatchService) RemoveLastGoal(ctx context.Context, matchID, teamID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RemoveLastGoal", attribute.String("match.id", matchID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	updated, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		if !m.HasSide(teamID) {
			return fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, teamID, m.ID)
		}
		for i := len(m.Goals) - 1; i >= 0; i-- {
			if m.Goals[i].Team == teamID {
				m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: team %s has no goal to remove", ErrConflict, teamID)
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "goal removed", "match_id", updated.ID, "team_id", teamID)
	return updated, nil
}

// Reset clears the goal log together with any published result. The status is kept.
func (s *MatchService) Reset(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Reset", attribute.String("match.id", matchID))
	defer span.End()

	updated, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		m.Goals = []match.Goal{}
		m.ManOfTheMatch = ""
		m.MoMWinners = nil
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.WarnContext(ctx, "match reset", "match_id", updated.ID)
	refreshLeaderboardStore(ctx, s.refresher, s.logger, "match reset")
	return updated, nil
}

func (s *MatchService) SetPredictionsLocked(ctx context.Context, matchID string, locked bool) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetPredictionsLocked", attribute.String("match.id", matchID))
	defer span.End()

	return s.mutate(ctx, matchID, func(m *match.Match) error {
		m.PredictionsLocked = locked
		return nil
	})
}

// mutate runs fn inside the repository's atomic update and keeps the stored
// score fields in line with the goal log.
func (s *MatchService) mutate(ctx context.Context, matchID string, fn match.MutateFunc) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	updated, err := s.matchRepo.Update(ctx, matchID, func(m *match.Match) error {
		if err := fn(m); err != nil {
			return err
		}
		m.SyncScore()
		m.UpdatedAt = now
		return nil
	})
	if err != nil {
		return match.Match{}, translateMatchUpdateError(err, matchID)
	}
	return updated, nil
}

// translateMatchUpdateError keeps use case errors raised inside a mutation and
// maps repository errors onto use case errors.
func translateMatchUpdateError(err error, matchID string) error {
	switch {
	case errors.Is(err, match.ErrNotFound):
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrConflict):
		return err
	default:
		return fmt.Errorf("update match: %w", err)
	}
}

func requireKickedOff(m match.Match) error {
	if match.NormalizeStatus(m.Status) == match.StatusUpcoming {
		return fmt.Errorf("%w: match %s has not kicked off", ErrConflict, m.ID)
	}
	if !m.IsResolved() {
		return fmt.Errorf("%w: match %s teams are not decided", ErrConflict, m.ID)
	}
	return nil
}
