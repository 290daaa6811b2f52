// Package sqlite implements the task repo interface using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tudu-dev/tudu"
)

type repo struct {
	db        *sql.DB
	tableName string
}

const taskColumns = "id, description, done, created_at, updated_at, completed_at"

func (r *repo) Add(ctx context.Context, description string) (tudu.Task, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (description, done, created_at, updated_at)
		VALUES (?, 0, ?, ?)`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, description, now, now)
	if err != nil {
		return tudu.Task{}, fmt.Errorf("add: %w", err)
	}

	// SQLite assigns the id via the rowid of the inserted row
	id, err := result.LastInsertId()
	if err != nil {
		return tudu.Task{}, fmt.Errorf("add: last insert id: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *repo) Get(ctx context.Context, id int64) (tudu.Task, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT %s FROM %s WHERE id = ?`, taskColumns, r.tableName)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tudu.Task{}, tudu.ErrNotFound
		}
		return tudu.Task{}, fmt.Errorf("get: %w", err)
	}

	return task, nil
}

func (r *repo) SetDone(ctx context.Context, id int64, done bool) (tudu.Task, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var query string
	var args []any
	if done {
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`UPDATE %s
			SET done = 1, completed_at = COALESCE(completed_at, ?), updated_at = ?
			WHERE id = ?`, r.tableName)
		args = []any{now, now, id}
	} else {
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`UPDATE %s
			SET done = 0, completed_at = NULL, updated_at = ?
			WHERE id = ?`, r.tableName)
		args = []any{now, id}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return tudu.Task{}, fmt.Errorf("set done: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return tudu.Task{}, fmt.Errorf("set done: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return tudu.Task{}, fmt.Errorf("set done: %w", tudu.ErrNotFound)
	}

	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("delete: %w", tudu.ErrNotFound)
	}

	return nil
}

func (r *repo) Clear(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s`, r.tableName) //nolint:gosec // table name is validated

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear: rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *repo) List(ctx context.Context, q tudu.ListQuery) (tudu.ListResult, error) {
	afterID, err := tudu.DecodeCursor(q.Cursor)
	if err != nil {
		return tudu.ListResult{}, fmt.Errorf("list: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s AND id > ?
		ORDER BY id
		LIMIT ?
	`, taskColumns, r.tableName, filterCondition(q.Filter))
	args := []any{afterID, q.Limit + 1}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return tudu.ListResult{}, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]tudu.Task, 0, q.Limit)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return tudu.ListResult{}, fmt.Errorf("list: %w", scanErr)
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
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT COUNT(*) FROM %s WHERE %s`, r.tableName, filterCondition(f))

	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return n, nil
}

// filterCondition maps a filter to a WHERE fragment. Filters are validated
// by the service layer; anything unknown falls back to all rows.
func filterCondition(f tudu.Filter) string {
	switch f {
	case tudu.FilterPending:
		return "done = 0"
	case tudu.FilterDone:
		return "done = 1"
	default:
		return "1 = 1"
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, converting the TEXT timestamps SQLite stores
// back into time.Time values.
func scanTask(row rowScanner) (tudu.Task, error) {
	var t tudu.Task
	var createdAt, updatedAt string
	var completedAt sql.NullString

	if err := row.Scan(&t.ID, &t.Description, &t.Done, &createdAt, &updatedAt, &completedAt); err != nil {
		return tudu.Task{}, err
	}

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return tudu.Task{}, fmt.Errorf("parse created_at: %w", err)
	}

	t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return tudu.Task{}, fmt.Errorf("parse updated_at: %w", err)
	}

	if completedAt.Valid {
		parsed, parseErr := time.Parse(time.RFC3339Nano, completedAt.String)
		if parseErr != nil {
			return tudu.Task{}, fmt.Errorf("parse completed_at: %w", parseErr)
		}
		t.CompletedAt = &parsed
	}

	return t, nil
}
