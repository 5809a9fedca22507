package match

import "context"

// MutateFunc edits a match in place during an atomic update. Returning an error
// aborts the update and leaves the stored match untouched.
type MutateFunc func(m *Match) error

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Update(ctx context.Context, matchID string, mutate MutateFunc) (Match, error)
	UpsertMany(ctx context.Context, items []Match) error
	Count(ctx context.Context) (int, error)
}
