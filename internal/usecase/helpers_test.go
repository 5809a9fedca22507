package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/republic-cup/internal/platform/logging"
)

type testRepos struct {
	teams       *memory.TeamRepository
	matches     *memory.MatchRepository
	predictions *memory.PredictionRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	repos := testRepos{
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		matches:     memory.NewMatchRepository(nil),
		predictions: memory.NewPredictionRepository(nil),
	}
	svc := NewMatchService(repos.teams, repos.matches, logging.NewNop())
	if _, err := svc.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("seed matches: %v", err)
	}
	return repos
}

func (r testRepos) setStatus(t *testing.T, matchID, status string) {
	t.Helper()

	_, err := r.matches.Update(context.Background(), matchID, func(m *match.Match) error {
		m.Status = status
		return nil
	})
	if err != nil {
		t.Fatalf("set status of %s: %v", matchID, err)
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// fakeLeaderboardStore records the last leaderboard written to it.
type fakeLeaderboardStore struct {
	entries  map[string]settlement.LeaderboardEntry
	replaced int
	err      error
}

func newFakeLeaderboardStore() *fakeLeaderboardStore {
	return &fakeLeaderboardStore{entries: map[string]settlement.LeaderboardEntry{}}
}

func (s *fakeLeaderboardStore) Replace(_ context.Context, entries []settlement.LeaderboardEntry) error {
	if s.err != nil {
		return s.err
	}
	s.replaced++
	s.entries = make(map[string]settlement.LeaderboardEntry, len(entries))
	for _, entry := range entries {
		s.entries[entry.UserKey] = entry
	}
	return nil
}

func (s *fakeLeaderboardStore) Get(_ context.Context, userKey string) (settlement.LeaderboardEntry, bool, error) {
	if s.err != nil {
		return settlement.LeaderboardEntry{}, false, s.err
	}
	entry, ok := s.entries[userKey]
	return entry, ok, nil
}
