package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	basecache "github.com/riskibarqy/republic-cup/internal/platform/cache"
)

const (
	teamKeyPrefix       = "team:"
	matchKeyPrefix      = "match:"
	predictionKeyPrefix = "prediction:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"id:"+teamID, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	item := cached.value
	item.Players = slices.Clone(item.Players)
	return item, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		item.Players = slices.Clone(item.Players)
		out = append(out, item)
	}
	return out
}

// MatchRepository serves reads from the cache and drops every cached match
// after a write, since any write can change standings-relevant fields.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	items, err := basecache.Load(ctx, r.cache, matchKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, matchKeyPrefix+"id:"+matchID, func(ctx context.Context) (cachedMatchByID, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return cachedMatchByID{}, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

func (r *MatchRepository) Update(ctx context.Context, matchID string, mutate match.MutateFunc) (match.Match, error) {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Update(ctx, matchID, mutate)
}

func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.UpsertMany(ctx, items)
}

func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type PredictionRepository struct {
	next  prediction.Repository
	cache *basecache.Store
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{next: next, cache: cache}
}

func (r *PredictionRepository) List(ctx context.Context) ([]prediction.Prediction, error) {
	items, err := basecache.Load(ctx, r.cache, predictionKeyPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	items, err := basecache.Load(ctx, r.cache, predictionKeyPrefix+"match:"+matchID, func(ctx context.Context) ([]prediction.Prediction, error) {
		return r.next.ListByMatch(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) error {
	defer r.cache.DeletePrefix(ctx, predictionKeyPrefix)
	return r.next.Create(ctx, item)
}

func (r *PredictionRepository) Delete(ctx context.Context, predictionID string) (bool, error) {
	defer r.cache.DeletePrefix(ctx, predictionKeyPrefix)
	return r.next.Delete(ctx, predictionID)
}

func (r *PredictionRepository) DeleteAll(ctx context.Context) (int, error) {
	defer r.cache.DeletePrefix(ctx, predictionKeyPrefix)
	return r.next.DeleteAll(ctx)
}

func (r *PredictionRepository) ReplaceAll(ctx context.Context, items []prediction.Prediction) error {
	defer r.cache.DeletePrefix(ctx, predictionKeyPrefix)
	return r.next.ReplaceAll(ctx, items)
}
