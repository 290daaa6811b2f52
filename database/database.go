package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tudu-dev/tudu"
	"github.com/tudu-dev/tudu/database/postgres"
	"github.com/tudu-dev/tudu/database/sqlite"
)

// Config holds the configuration for connecting to a task storage backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" validate:"required"`
	// Tables holds the task table name
	Tables tudu.Tables `mapstructure:"tables"`
	// AutoMigrate runs migrations on connect when true
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// Database is a connected backend ready to hand out a TaskRepo.
type Database interface {
	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error
	// Migrate creates or upgrades the task table.
	Migrate(ctx context.Context) error
	// Validate checks the existing schema against the expected structure.
	Validate(ctx context.Context) error
	// GetRepo returns the TaskRepo for task operations.
	GetRepo() tudu.TaskRepo
	// Close releases the underlying connection or pool.
	Close() error
}

// Connect establishes a connection to the configured database backend.
// It does not migrate or validate; callers decide how much setup they want.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	switch cfg.Type {
	case "sqlite":
		return sqlite.Connect(ctx, cfg.DSN, cfg.Tables)
	case "postgres":
		return postgres.Connect(ctx, cfg.DSN, cfg.Tables)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// FromURL derives the backend type and DSN from a DATABASE_URL-style value.
// URLs starting with sqlite: or file:, and bare filesystem paths, select the
// sqlite backend; postgres: and postgresql: URLs select postgres and are
// passed to the driver unchanged.
func FromURL(url string) (dbType, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		return "sqlite", strings.TrimPrefix(url, "sqlite:"), nil
	case strings.HasPrefix(url, "file:"):
		return "sqlite", url, nil
	case strings.HasPrefix(url, "postgres:"), strings.HasPrefix(url, "postgresql:"):
		return "postgres", url, nil
	case strings.Contains(url, "://"):
		scheme, _, _ := strings.Cut(url, "://")
		return "", "", fmt.Errorf("unsupported database scheme: %s", scheme)
	case url == "":
		return "", "", fmt.Errorf("empty database url")
	default:
		// Bare path, e.g. todos.db or :memory:
		return "sqlite", url, nil
	}
}
