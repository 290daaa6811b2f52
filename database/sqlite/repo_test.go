package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudu-dev/tudu"
)

func TestRepo_AddAndGet(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, "buy milk")
	require.NoError(t, err)

	assert.Positive(t, added.ID)
	assert.Equal(t, "buy milk", added.Description)
	assert.False(t, added.Done)
	assert.False(t, added.CreatedAt.IsZero())
	assert.False(t, added.UpdatedAt.IsZero())
	assert.Nil(t, added.CompletedAt)

	got, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestRepo_Add_SequentialIDs(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, "first")
	require.NoError(t, err)

	second, err := repo.Add(ctx, "second")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, tudu.ErrNotFound)
}

func TestRepo_SetDone(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, "buy milk")
	require.NoError(t, err)

	done, err := repo.SetDone(ctx, added.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Done)
	require.NotNil(t, done.CompletedAt)

	// Completing again keeps the original completion time
	again, err := repo.SetDone(ctx, added.ID, true)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, *done.CompletedAt, *again.CompletedAt)

	reopened, err := repo.SetDone(ctx, added.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Done)
	assert.Nil(t, reopened.CompletedAt)
}

func TestRepo_SetDone_NotFound(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	_, err := repo.SetDone(context.Background(), 999, true)
	assert.ErrorIs(t, err, tudu.ErrNotFound)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, "buy milk")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, added.ID))

	_, err = repo.Get(ctx, added.ID)
	assert.ErrorIs(t, err, tudu.ErrNotFound)

	err = repo.Delete(ctx, added.ID)
	assert.ErrorIs(t, err, tudu.ErrNotFound)
}

func TestRepo_Clear(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i := range 3 {
		_, err := repo.Add(ctx, fmt.Sprintf("task %d", i))
		require.NoError(t, err)
	}

	cleared, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)

	n, err := repo.Count(ctx, tudu.FilterAll)
	require.NoError(t, err)
	assert.Zero(t, n)

	cleared, err = repo.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestRepo_List_Filters(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	var ids []int64
	for i := range 4 {
		task, err := repo.Add(ctx, fmt.Sprintf("task %d", i))
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	_, err := repo.SetDone(ctx, ids[1], true)
	require.NoError(t, err)
	_, err = repo.SetDone(ctx, ids[3], true)
	require.NoError(t, err)

	all, err := repo.List(ctx, tudu.ListQuery{Filter: tudu.FilterAll, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
	assert.Empty(t, all.NextCursor)

	pending, err := repo.List(ctx, tudu.ListQuery{Filter: tudu.FilterPending, Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending.Items, 2)
	assert.Equal(t, ids[0], pending.Items[0].ID)
	assert.Equal(t, ids[2], pending.Items[1].ID)

	done, err := repo.List(ctx, tudu.ListQuery{Filter: tudu.FilterDone, Limit: 10})
	require.NoError(t, err)
	require.Len(t, done.Items, 2)
	assert.Equal(t, ids[1], done.Items[0].ID)
	assert.Equal(t, ids[3], done.Items[1].ID)
}

func TestRepo_List_Pagination(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := repo.Add(ctx, fmt.Sprintf("task %d", i))
		require.NoError(t, err)
	}

	var seen []string
	cursor := ""
	pages := 0

	for {
		page, err := repo.List(ctx, tudu.ListQuery{Filter: tudu.FilterAll, Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		pages++

		for _, item := range page.Items {
			seen = append(seen, item.Description)
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"task 0", "task 1", "task 2", "task 3", "task 4"}, seen)
}

func TestRepo_List_InvalidCursor(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	_, err := repo.List(context.Background(), tudu.ListQuery{Filter: tudu.FilterAll, Limit: 10, Cursor: "!!bad!!"})
	assert.Error(t, err)
}

func TestRepo_Count(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, "first")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "second")
	require.NoError(t, err)

	_, err = repo.SetDone(ctx, first.ID, true)
	require.NoError(t, err)

	tests := []struct {
		filter tudu.Filter
		want   int64
	}{
		{tudu.FilterAll, 2},
		{tudu.FilterPending, 1},
		{tudu.FilterDone, 1},
	}

	for _, tt := range tests {
		n, err := repo.Count(ctx, tt.filter)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n, "filter %s", tt.filter)
	}
}
