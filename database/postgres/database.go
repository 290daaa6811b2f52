package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tudu-dev/tudu"
)

// database provides PostgreSQL database operations.
type database struct {
	pool   *pgxpool.Pool
	tables tudu.Tables
}

// Connect establishes a connection to PostgreSQL.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables tudu.Tables) (*database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &database{
		pool:   pool,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	if err := createTasksTable(ctx, d.pool, d.tables.Tasks); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// DropTables removes all managed tables. Used by tests.
func (d *database) DropTables(ctx context.Context) error {
	if err := dropTable(ctx, d.pool, d.tables.Tasks); err != nil {
		return fmt.Errorf("migrate down %s: %w", d.tables.Tasks, err)
	}
	return nil
}

// Validate checks that the database schema matches the expected structure.
func (d *database) Validate(ctx context.Context) error {
	validations := getTableValidations(d.tables)

	for _, validation := range validations {
		if err := validateTableSchema(ctx, d.pool, validation.tableName, validation.expectedSchema); err != nil {
			return fmt.Errorf("validate schema %s: %w", validation.tableName, err)
		}
	}

	return nil
}

// GetRepo returns the TaskRepo for task operations.
func (d *database) GetRepo() tudu.TaskRepo {
	return &repo{pool: d.pool, tableName: d.tables.Tasks}
}

// Close closes the database connection pool.
func (d *database) Close() error {
	d.pool.Close()
	return nil
}
