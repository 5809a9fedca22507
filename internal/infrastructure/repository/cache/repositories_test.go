package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/republic-cup/internal/mocks/domain/match"
	basecache "github.com/riskibarqy/republic-cup/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestMatchRepository_ListIsCachedUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := matchmock.NewRepository(t)
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))

	first := []match.Match{{ID: "match-1", Status: match.StatusUpcoming}}
	second := []match.Match{{ID: "match-1", Status: match.StatusLive}}

	next.On("List", mock.Anything).Return(first, nil).Once()
	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if items[0].Status != match.StatusUpcoming {
			t.Fatalf("unexpected cached status: %s", items[0].Status)
		}
	}

	next.On("Update", mock.Anything, "match-1", mock.Anything).Return(second[0], nil).Once()
	if _, err := repo.Update(ctx, "match-1", func(*match.Match) error { return nil }); err != nil {
		t.Fatalf("update: %v", err)
	}

	next.On("List", mock.Anything).Return(second, nil).Once()
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if items[0].Status != match.StatusLive {
		t.Fatalf("cache was not invalidated by update")
	}
}

func TestMatchRepository_ListDuringUpdateDoesNotCacheStaleRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := matchmock.NewRepository(t)
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))

	stale := []match.Match{{ID: "match-1", Status: match.StatusUpcoming}}
	fresh := []match.Match{{ID: "match-1", Status: match.StatusLive}}

	next.On("Update", mock.Anything, "match-1", mock.Anything).Return(fresh[0], nil).Once()
	next.On("List", mock.Anything).Return(stale, nil).Run(func(mock.Arguments) {
		// the write lands after the rows were read but before the load returns
		if _, err := repo.Update(ctx, "match-1", func(*match.Match) error { return nil }); err != nil {
			t.Errorf("update: %v", err)
		}
	}).Once()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	next.On("List", mock.Anything).Return(fresh, nil).Once()
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if items[0].Status != match.StatusLive {
		t.Fatalf("stale rows cached across update: %s", items[0].Status)
	}
}

func TestMatchRepository_CachedValuesAreCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(memory.NewMatchRepository([]match.Match{
		{ID: "match-1", Goals: []match.Goal{{Player: "Ninad", Team: "feel-united"}}},
	}), basecache.NewStore(time.Minute))

	items, _ := repo.List(ctx)
	items[0].Goals[0].Player = "changed"

	again, _ := repo.List(ctx)
	if again[0].Goals[0].Player != "Ninad" {
		t.Fatalf("cached match was mutated through a returned copy")
	}
}

func TestPredictionRepository_CreateInvalidatesMatchLists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPredictionRepository(memory.NewPredictionRepository(nil), basecache.NewStore(time.Minute))

	before, _ := repo.ListByMatch(ctx, "match-1")
	if len(before) != 0 {
		t.Fatalf("expected no predictions, got %d", len(before))
	}
	if err := repo.Create(ctx, prediction.Prediction{ID: "p1", MatchID: "match-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	after, _ := repo.ListByMatch(ctx, "match-1")
	if len(after) != 1 {
		t.Fatalf("expected fresh list after create, got %d", len(after))
	}
}
