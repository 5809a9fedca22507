package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	qb "github.com/riskibarqy/republic-cup/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) List(ctx context.Context) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}
	return r.list(ctx, query, args...)
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by match query: %w", err)
	}
	return r.list(ctx, query, args...)
}

func (r *PredictionRepository) list(ctx context.Context, query string, args ...any) ([]prediction.Prediction, error) {
	rows, err := selectRows[predictionTableModel](ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) error {
	query, args, err := qb.InsertModel("predictions", newPredictionTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("prediction %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Delete(ctx context.Context, predictionID string) (bool, error) {
	query, args, err := qb.DeleteFrom("predictions").
		Where(qb.Eq("id", predictionID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete prediction query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete prediction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete prediction rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PredictionRepository) DeleteAll(ctx context.Context) (int, error) {
	query, args, err := qb.DeleteFrom("predictions").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete predictions query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete predictions rows affected: %w", err)
	}
	return int(affected), nil
}

func (r *PredictionRepository) ReplaceAll(ctx context.Context, items []prediction.Prediction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace predictions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("predictions").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear predictions query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear predictions: %w", err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel("predictions", newPredictionTableModel(item), "")
		if err != nil {
			return fmt.Errorf("build insert prediction query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert prediction %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace predictions: %w", err)
	}
	return nil
}
