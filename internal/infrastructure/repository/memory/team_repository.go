package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		items = append(items, cloneTeam(item))
	}
	return &TeamRepository{teams: items}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.ID == teamID {
			return cloneTeam(item), true, nil
		}
	}
	return team.Team{}, false, nil
}

func cloneTeam(item team.Team) team.Team {
	item.Players = slices.Clone(item.Players)
	return item
}
