package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudu-dev/tudu"
	"github.com/tudu-dev/tudu/database/sqlite"
)

func TestMigrateAndValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tables := tudu.Tables{Tasks: getRandomTableName(t)}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Validation fails before migration
	assert.Error(t, db.Validate(ctx))

	require.NoError(t, db.Migrate(ctx))
	assert.NoError(t, db.Validate(ctx))

	// Migrate is idempotent
	require.NoError(t, db.Migrate(ctx))
	assert.NoError(t, db.Validate(ctx))
}

func TestDropTables(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tables := tudu.Tables{Tasks: getRandomTableName(t)}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.DropTables(ctx))

	assert.Error(t, db.Validate(ctx))
}
