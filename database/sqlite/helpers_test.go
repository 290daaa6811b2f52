package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tudu-dev/tudu"
	"github.com/tudu-dev/tudu/database/sqlite"
)

// getRandomTableName generates a unique table name for test isolation.
func getRandomTableName(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("tasks_%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// setupTestRepo creates a repo against an in-memory database with a unique
// table name.
func setupTestRepo(t *testing.T) tudu.TaskRepo {
	t.Helper()

	ctx := context.Background()

	tables := tudu.Tables{Tasks: getRandomTableName(t)}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() { _ = db.Close() })

	err = db.Migrate(ctx)
	require.NoError(t, err, "failed to migrate")

	return db.GetRepo()
}
