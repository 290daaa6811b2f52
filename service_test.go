package tudu_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tudu-dev/tudu"
)

type SpyTaskRepo struct {
	mock.Mock
}

func (s *SpyTaskRepo) Add(ctx context.Context, description string) (tudu.Task, error) {
	args := s.Called(ctx, description)
	return args.Get(0).(tudu.Task), args.Error(1)
}

func (s *SpyTaskRepo) Get(ctx context.Context, id int64) (tudu.Task, error) {
	args := s.Called(ctx, id)
	return args.Get(0).(tudu.Task), args.Error(1)
}

func (s *SpyTaskRepo) SetDone(ctx context.Context, id int64, done bool) (tudu.Task, error) {
	args := s.Called(ctx, id, done)
	return args.Get(0).(tudu.Task), args.Error(1)
}

func (s *SpyTaskRepo) Delete(ctx context.Context, id int64) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *SpyTaskRepo) Clear(ctx context.Context) (int64, error) {
	args := s.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SpyTaskRepo) List(ctx context.Context, q tudu.ListQuery) (tudu.ListResult, error) {
	args := s.Called(ctx, q)
	return args.Get(0).(tudu.ListResult), args.Error(1)
}

func (s *SpyTaskRepo) Count(ctx context.Context, f tudu.Filter) (int64, error) {
	args := s.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func NewTaskService(t *testing.T) (*tudu.TaskService, *SpyTaskRepo) {
	t.Helper()
	spyRepo := new(SpyTaskRepo)
	s, err := tudu.NewTaskService(spyRepo)
	assert.NoError(t, err, "new task service")
	return s, spyRepo
}

func TestNewTaskService_NilRepo(t *testing.T) {
	_, err := tudu.NewTaskService(nil)
	assert.Error(t, err)
}

func TestTaskService_Add(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		want := tudu.Task{ID: 1, Description: "buy milk"}
		repo.On("Add", ctx, "buy milk").Return(want, nil)

		got, err := service.Add(ctx, "buy milk")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("trims whitespace before storing", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		repo.On("Add", ctx, "buy milk").Return(tudu.Task{ID: 2, Description: "buy milk"}, nil)

		_, err := service.Add(ctx, "  buy milk\n")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty description", func(t *testing.T) {
		service, repo := NewTaskService(t)

		_, err := service.Add(context.Background(), "   ")
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)
		repo.AssertNotCalled(t, "Add")
	})

	t.Run("description too long", func(t *testing.T) {
		service, repo := NewTaskService(t)

		_, err := service.Add(context.Background(), strings.Repeat("x", tudu.MaxDescriptionLength+1))
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)
		repo.AssertNotCalled(t, "Add")
	})

	t.Run("repo error propagates", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		repoErr := errors.New("boom")
		repo.On("Add", ctx, "buy milk").Return(tudu.Task{}, repoErr)

		_, err := service.Add(ctx, "buy milk")
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTaskService_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		want := tudu.Task{ID: 7, Description: "buy milk", Done: true}
		repo.On("SetDone", ctx, int64(7), true).Return(want, nil)

		got, err := service.Complete(ctx, 7)
		assert.NoError(t, err)
		assert.True(t, got.Done)
		repo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		repo.On("SetDone", ctx, int64(99), true).Return(tudu.Task{}, tudu.ErrNotFound)

		_, err := service.Complete(ctx, 99)
		assert.ErrorIs(t, err, tudu.ErrNotFound)
	})

	t.Run("non-positive id", func(t *testing.T) {
		service, repo := NewTaskService(t)

		_, err := service.Complete(context.Background(), 0)
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)

		_, err = service.Complete(context.Background(), -3)
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)

		repo.AssertNotCalled(t, "SetDone")
	})
}

func TestTaskService_Reopen(t *testing.T) {
	service, repo := NewTaskService(t)
	ctx := context.Background()

	want := tudu.Task{ID: 7, Description: "buy milk", Done: false}
	repo.On("SetDone", ctx, int64(7), false).Return(want, nil)

	got, err := service.Reopen(ctx, 7)
	assert.NoError(t, err)
	assert.False(t, got.Done)
	repo.AssertExpectations(t)
}

func TestTaskService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		repo.On("Delete", ctx, int64(3)).Return(nil)

		assert.NoError(t, service.Delete(ctx, 3))
		repo.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		service, repo := NewTaskService(t)

		err := service.Delete(context.Background(), 0)
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestTaskService_Clear(t *testing.T) {
	service, repo := NewTaskService(t)
	ctx := context.Background()

	repo.On("Clear", ctx).Return(int64(5), nil)

	cleared, err := service.Clear(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), cleared)
	repo.AssertExpectations(t)
}

func TestTaskService_List(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		expectedQuery := tudu.ListQuery{Filter: tudu.FilterAll, Limit: tudu.DefaultListLimit}
		repo.On("List", ctx, expectedQuery).Return(tudu.ListResult{}, nil)

		_, err := service.List(ctx, tudu.ListQuery{})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("limit clamped", func(t *testing.T) {
		service, repo := NewTaskService(t)
		ctx := context.Background()

		expectedQuery := tudu.ListQuery{Filter: tudu.FilterDone, Limit: tudu.MaxListLimit}
		repo.On("List", ctx, expectedQuery).Return(tudu.ListResult{}, nil)

		_, err := service.List(ctx, tudu.ListQuery{Filter: tudu.FilterDone, Limit: 10_000})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid filter", func(t *testing.T) {
		service, repo := NewTaskService(t)

		_, err := service.List(context.Background(), tudu.ListQuery{Filter: "finished"})
		assert.ErrorIs(t, err, tudu.ErrInvalidInput)
		repo.AssertNotCalled(t, "List")
	})
}

func TestTaskService_Count(t *testing.T) {
	service, repo := NewTaskService(t)
	ctx := context.Background()

	repo.On("Count", ctx, tudu.FilterPending).Return(int64(2), nil)

	n, err := service.Count(ctx, tudu.FilterPending)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	repo.AssertExpectations(t)
}
