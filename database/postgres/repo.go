// Package postgres implements the task repo interface using PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tudu-dev/tudu"
)

type repo struct {
	pool      *pgxpool.Pool
	tableName string
}

const taskColumns = "id, description, done, created_at, updated_at, completed_at"

func (r *repo) Add(ctx context.Context, description string) (tudu.Task, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (description)
		VALUES ($1)
		RETURNING %s
	`, r.tableName, taskColumns)

	task, err := scanTask(r.pool.QueryRow(ctx, query, description))
	if err != nil {
		return tudu.Task{}, fmt.Errorf("add: %w", err)
	}

	return task, nil
}

func (r *repo) Get(ctx context.Context, id int64) (tudu.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, taskColumns, r.tableName)

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tudu.Task{}, tudu.ErrNotFound
		}
		return tudu.Task{}, fmt.Errorf("get: %w", err)
	}

	return task, nil
}

func (r *repo) SetDone(ctx context.Context, id int64, done bool) (tudu.Task, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET done = $2,
			completed_at = CASE WHEN $2 THEN COALESCE(completed_at, NOW()) ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tableName, taskColumns)

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, done))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tudu.Task{}, fmt.Errorf("set done: %w", tudu.ErrNotFound)
		}
		return tudu.Task{}, fmt.Errorf("set done: %w", err)
	}

	return task, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete: %w", tudu.ErrNotFound)
	}

	return nil
}

func (r *repo) Clear(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s`, r.tableName)

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *repo) List(ctx context.Context, q tudu.ListQuery) (tudu.ListResult, error) {
	afterID, err := tudu.DecodeCursor(q.Cursor)
	if err != nil {
		return tudu.ListResult{}, fmt.Errorf("list: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s AND id > $1
		ORDER BY id
		LIMIT $2
	`, taskColumns, r.tableName, filterCondition(q.Filter))
	args := []any{afterID, q.Limit + 1}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return tudu.ListResult{}, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	items := make([]tudu.Task, 0, q.Limit)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return tudu.ListResult{}, fmt.Errorf("list: scan: %w", scanErr)
		}
		items = append(items, task)
	}

	if err := rows.Err(); err != nil {
		return tudu.ListResult{}, fmt.Errorf("list: rows: %w", err)
	}

	var nextCursor string
	if len(items) > q.Limit {
		// Cursor points to the last item of the current page
		lastItem := items[q.Limit-1]
		nextCursor = tudu.EncodeCursor(lastItem.ID)
		items = items[:q.Limit]
	}

	return tudu.ListResult{Items: items, NextCursor: nextCursor}, nil
}

func (r *repo) Count(ctx context.Context, f tudu.Filter) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tableName, filterCondition(f))

	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return n, nil
}

// filterCondition maps a filter to a WHERE fragment. Filters are validated
// by the service layer; anything unknown falls back to all rows.
func filterCondition(f tudu.Filter) string {
	switch f {
	case tudu.FilterPending:
		return "NOT done"
	case tudu.FilterDone:
		return "done"
	default:
		return "TRUE"
	}
}

func scanTask(row pgx.Row) (tudu.Task, error) {
	var t tudu.Task
	if err := row.Scan(&t.ID, &t.Description, &t.Done, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt); err != nil {
		return tudu.Task{}, err
	}
	return t, nil
}
