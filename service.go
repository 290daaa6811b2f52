package tudu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest task description the service accepts,
// in runes.
const MaxDescriptionLength = 1000

// DefaultListLimit is used when a list query does not specify a limit.
const DefaultListLimit = 100

// MaxListLimit caps the page size of a single list query.
const MaxListLimit = 1000

// TaskRepo defines the interface for task persistence.
// Implementations must handle concurrent access safely.
//
// All methods accept a context for cancellation and timeout control.
type TaskRepo interface {
	// Add inserts a new pending task and returns it with its
	// database-assigned id and timestamps.
	Add(ctx context.Context, description string) (Task, error)

	// Get retrieves a task by id.
	// Returns ErrNotFound if no task with that id exists.
	Get(ctx context.Context, id int64) (Task, error)

	// SetDone marks a task done or pending and returns the updated task.
	// Returns ErrNotFound if no task with that id exists.
	SetDone(ctx context.Context, id int64, done bool) (Task, error)

	// Delete removes a task by id.
	// Returns ErrNotFound if no task with that id exists.
	Delete(ctx context.Context, id int64) error

	// Clear removes all tasks and returns the number removed.
	Clear(ctx context.Context) (int64, error)

	// List retrieves a page of tasks ordered by id ascending.
	// The query's cursor, when set, resumes after the task it encodes.
	List(ctx context.Context, q ListQuery) (ListResult, error)

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, f Filter) (int64, error)
}

// TaskService wraps a TaskRepo with input validation. It is the entry point
// for everything the CLI and HTTP layers do.
type TaskService struct {
	repo TaskRepo
}

func NewTaskService(repo TaskRepo) (*TaskService, error) {
	if repo == nil {
		return nil, errors.New("new task service: repo is required")
	}
	return &TaskService{repo: repo}, nil
}

// Add creates a new pending task from the given description.
// Returns ErrInvalidInput if the description is empty after trimming or
// longer than MaxDescriptionLength runes.
func (s *TaskService) Add(ctx context.Context, description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, fmt.Errorf("add: empty description: %w", ErrInvalidInput)
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Task{}, fmt.Errorf("add: description longer than %d characters: %w", MaxDescriptionLength, ErrInvalidInput)
	}

	task, err := s.repo.Add(ctx, description)
	if err != nil {
		return Task{}, fmt.Errorf("add: %w", err)
	}

	return task, nil
}

// Get retrieves a task by id.
func (s *TaskService) Get(ctx context.Context, id int64) (Task, error) {
	if id <= 0 {
		return Task{}, fmt.Errorf("get: id must be positive: %w", ErrInvalidInput)
	}

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("get: %w", err)
	}

	return task, nil
}

// Complete marks a task done. Completing an already-done task keeps its
// original completion time.
func (s *TaskService) Complete(ctx context.Context, id int64) (Task, error) {
	return s.setDone(ctx, "complete", id, true)
}

// Reopen marks a done task pending again.
func (s *TaskService) Reopen(ctx context.Context, id int64) (Task, error) {
	return s.setDone(ctx, "reopen", id, false)
}

func (s *TaskService) setDone(ctx context.Context, op string, id int64, done bool) (Task, error) {
	if id <= 0 {
		return Task{}, fmt.Errorf("%s: id must be positive: %w", op, ErrInvalidInput)
	}

	task, err := s.repo.SetDone(ctx, id, done)
	if err != nil {
		return Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

// Delete removes a single task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete: id must be positive: %w", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Clear removes every task and returns the number removed.
func (s *TaskService) Clear(ctx context.Context) (int64, error) {
	cleared, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}

	return cleared, nil
}

// List retrieves a page of tasks. An empty filter defaults to FilterAll and
// the limit is clamped to [1, MaxListLimit], defaulting to DefaultListLimit.
func (s *TaskService) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if q.Filter == "" {
		q.Filter = FilterAll
	}

	if !q.Filter.IsValid() {
		return ListResult{}, fmt.Errorf("list: invalid filter %q: %w", q.Filter, ErrInvalidInput)
	}

	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}

	result, err := s.repo.List(ctx, q)
	if err != nil {
		return ListResult{}, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// Count returns the number of tasks matching the filter. An empty filter
// counts everything.
func (s *TaskService) Count(ctx context.Context, f Filter) (int64, error) {
	if f == "" {
		f = FilterAll
	}

	if !f.IsValid() {
		return 0, fmt.Errorf("count: invalid filter %q: %w", f, ErrInvalidInput)
	}

	n, err := s.repo.Count(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return n, nil
}
