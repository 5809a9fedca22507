package prediction

import "context"

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)
	Create(ctx context.Context, item Prediction) error
	Delete(ctx context.Context, predictionID string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, items []Prediction) error
}
