package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tudu-dev/tudu"
	"github.com/tudu-dev/tudu/cli"
	"github.com/tudu-dev/tudu/config"
	"github.com/tudu-dev/tudu/database"
)

// openDatabase connects to the configured backend and prepares the schema.
// The caller must close the returned database.
func openDatabase(ctx context.Context, cfg *config.Config) (database.Database, error) {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	if err = db.Validate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("validate database schema: %w", err)
	}

	return db, nil
}

// openService opens the database and wraps its repo in a task service.
// The returned close func releases the underlying connection.
func openService(cmd *cobra.Command) (*tudu.TaskService, func(), error) {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}

	service, err := tudu.NewTaskService(db.GetRepo())
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, func() { _ = db.Close() }, nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() cli.Formatter {
	return cli.NewFormatter(jsonOutput, quiet)
}
