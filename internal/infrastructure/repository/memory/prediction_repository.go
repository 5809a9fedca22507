package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
)

// PredictionRepository keeps votes in submission order.
type PredictionRepository struct {
	mu    sync.RWMutex
	items []prediction.Prediction
}

func NewPredictionRepository(items []prediction.Prediction) *PredictionRepository {
	return &PredictionRepository{items: slices.Clone(items)}
}

func (r *PredictionRepository) List(_ context.Context) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.items), nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return prediction.ForMatch(r.items, matchID), nil
}

func (r *PredictionRepository) Create(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == item.ID {
			return fmt.Errorf("prediction %s already exists", item.ID)
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *PredictionRepository) Delete(_ context.Context, predictionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.items, func(item prediction.Prediction) bool {
		return item.ID == predictionID
	})
	if idx < 0 {
		return false, nil
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return true, nil
}

func (r *PredictionRepository) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.items)
	r.items = nil
	return count, nil
}

func (r *PredictionRepository) ReplaceAll(_ context.Context, items []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = slices.Clone(items)
	return nil
}
