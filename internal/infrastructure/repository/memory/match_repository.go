package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	order   []string
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{matches: make(map[string]match.Match, len(matches))}
	r.put(matches)
	return r
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, matchID := range r.order {
		out = append(out, r.matches[matchID].Clone())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return item.Clone(), true, nil
}

// Update applies mutate to a private copy and stores it only when mutate
// succeeds, so concurrent writers never observe a half-applied change.
func (r *MatchRepository) Update(_ context.Context, matchID string, mutate match.MutateFunc) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}

	next := current.Clone()
	if err := mutate(&next); err != nil {
		return match.Match{}, err
	}
	next.ID = current.ID
	r.matches[matchID] = next
	return next.Clone(), nil
}

func (r *MatchRepository) UpsertMany(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(items)
	return nil
}

func (r *MatchRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matches), nil
}

func (r *MatchRepository) put(items []match.Match) {
	for _, item := range items {
		matchID := strings.TrimSpace(item.ID)
		if matchID == "" {
			continue
		}
		if _, exists := r.matches[matchID]; !exists {
			r.order = append(r.order, matchID)
		}
		r.matches[matchID] = item.Clone()
	}
}
