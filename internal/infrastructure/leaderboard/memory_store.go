package leaderboard

import (
	"context"
	"sync"

	"github.com/riskibarqy/republic-cup/internal/domain/settlement"
)

// MemoryStore is the in-process leaderboard used when Redis is disabled.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]settlement.LeaderboardEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]settlement.LeaderboardEntry)}
}

func (s *MemoryStore) Replace(_ context.Context, entries []settlement.LeaderboardEntry) error {
	next := make(map[string]settlement.LeaderboardEntry, len(entries))
	for _, entry := range entries {
		next[entry.UserKey] = entry
	}

	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userKey string) (settlement.LeaderboardEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userKey]
	return entry, ok, nil
}
