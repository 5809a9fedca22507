package postgres

import (
	"context"
	"fmt"
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/republic-cup/internal/domain/match"
	qb "github.com/riskibarqy/republic-cup/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("match_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	rows, err := selectRows[matchTableModel](ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

// Update locks the match row for the whole read-modify-write so concurrent
// goal entries on the same match serialize.
func (r *MatchRepository) Update(ctx context.Context, matchID string, mutate match.MutateFunc) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, crerr.Wrap(err, "begin tx update match")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return match.Match{}, crerr.Wrap(err, "build lock match query")
	}

	var row matchTableModel
	if err := tx.GetContext(ctx, &row, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, crerr.Wrapf(err, "lock match %s", matchID)
	}

	item := row.toDomain()
	if err := mutate(&item); err != nil {
		return match.Match{}, err
	}
	item.ID = row.ID

	next := newMatchTableModel(item)
	query, args, err := qb.Update("matches").
		Set("home_team", next.HomeTeam).
		Set("away_team", next.AwayTeam).
		Set("match_date", next.MatchDate).
		Set("match_time", next.MatchTime).
		Set("status", next.Status).
		Set("score_home", next.ScoreHome).
		Set("score_away", next.ScoreAway).
		Set("goals", next.Goals).
		Set("is_final", next.IsFinal).
		Set("man_of_the_match", next.ManOfTheMatch).
		Set("mom_winners", next.MoMWinners).
		Set("predictions_locked", next.PredictionsLocked).
		Set("updated_at", next.UpdatedAt).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, crerr.Wrap(err, "build update match query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, crerr.Wrapf(err, "update match %s", matchID)
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, crerr.Wrap(err, "commit update match")
	}
	return item, nil
}

func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		model := newMatchTableModel(item)
		cols, _, err := qb.ModelColumns(model)
		if err != nil {
			return fmt.Errorf("match columns: %w", err)
		}
		// created_at keeps its first value on conflict.
		cols = slices.DeleteFunc(cols, func(col string) bool { return col == "created_at" })

		query, args, err := qb.InsertModel("matches", model, qb.UpsertSuffix("id", cols))
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Count("matches")
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}
