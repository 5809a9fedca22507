package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/republic-cup/internal/infrastructure/repository/memory"
)

// BootstrapSeed upserts the registered teams so squad changes in code reach
// the database on the next start.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, t := range memory.SeedTeams() {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, position, name, short, players)
VALUES (:id, :position, :name, :short, :players)
ON CONFLICT (id) DO UPDATE SET
    position = EXCLUDED.position,
    name = EXCLUDED.name,
    short = EXCLUDED.short,
    players = EXCLUDED.players,
    updated_at = NOW()`, map[string]any{
			"id":       t.ID,
			"position": i + 1,
			"name":     t.Name,
			"short":    t.Short,
			"players":  pq.StringArray(t.Players),
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
