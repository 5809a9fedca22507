package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

// isBindParameterMismatch matches the error a transaction pooler returns when
// a pooled connection reuses another client's unnamed statement.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message supplies") && strings.Contains(text, "requires")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "unnamed prepared statement does not exist") ||
		(strings.Contains(text, "prepared statement") && strings.Contains(text, "26000"))
}

// selectRows runs a read query and retries it once when the pooler dropped
// the prepared statement under us.
func selectRows[T any](ctx context.Context, db sqlx.QueryerContext, query string, args ...any) ([]T, error) {
	var rows []T
	err := sqlx.SelectContext(ctx, db, &rows, query, args...)
	if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
		rows = nil
		err = sqlx.SelectContext(ctx, db, &rows, query, args...)
	}
	return rows, err
}
