package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

// upsertBatchSize keeps multi-row inserts well under the postgres bind parameter limit.
const upsertBatchSize = 500

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// upsertRows writes rows in batches inside one transaction.
func upsertRows[T any](ctx context.Context, db *sqlx.DB, table string, rows []T, suffix string) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(rows); start += upsertBatchSize {
		batch := rows[start:min(start+upsertBatchSize, len(rows))]
		query, args, err := qb.InsertModels(table, batch, suffix)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}

// dedupeBy keeps the last row per key. A single INSERT ... ON CONFLICT DO UPDATE
// cannot touch the same row twice.
func dedupeBy[T any, K comparable](rows []T, key func(T) K) []T {
	index := make(map[K]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if i, ok := index[k]; ok {
			out[i] = row
			continue
		}
		index[k] = len(out)
		out = append(out, row)
	}
	return out
}
