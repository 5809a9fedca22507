package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
)

func TestPredictionRepository_CreateDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPredictionRepository(nil)

	for _, item := range []prediction.Prediction{
		{ID: "p1", MatchID: "match-1", UserName: "Ana"},
		{ID: "p2", MatchID: "match-2", UserName: "Ana"},
		{ID: "p3", MatchID: "match-1", UserName: "Budi"},
	} {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.ID, err)
		}
	}
	if err := repo.Create(ctx, prediction.Prediction{ID: "p1"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	byMatch, _ := repo.ListByMatch(ctx, "match-1")
	if len(byMatch) != 2 || byMatch[0].ID != "p1" || byMatch[1].ID != "p3" {
		t.Fatalf("unexpected match predictions: %+v", byMatch)
	}

	deleted, err := repo.Delete(ctx, "p1")
	if err != nil || !deleted {
		t.Fatalf("delete p1: deleted=%v err=%v", deleted, err)
	}
	deleted, _ = repo.Delete(ctx, "p1")
	if deleted {
		t.Fatalf("second delete should report missing")
	}

	count, _ := repo.DeleteAll(ctx)
	if count != 2 {
		t.Fatalf("unexpected delete all count: %d", count)
	}
	items, _ := repo.List(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty repository, got %d", len(items))
	}
}
