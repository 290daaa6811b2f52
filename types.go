package tudu

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Task is a single task-list entry.
type Task struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Filter selects which tasks a list operation returns.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterDone:
		return true
	default:
		return false
	}
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid filter: %s (valid filters: all, pending, done)", s)
	}
	return f, nil
}

type ListQuery struct {
	Filter Filter
	Limit  int
	Cursor string
}

type ListResult struct {
	Items      []Task `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Tables holds configurable table names for task storage.
// This allows multiple task lists to share one database.
type Tables struct {
	Tasks string `mapstructure:"tasks"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all required table names are set and valid.
func (t Tables) Validate() error {
	if t.Tasks == "" {
		return errors.New("validate tables: tasks table name cannot be empty")
	}

	if !IsValidTableName(t.Tasks) {
		return fmt.Errorf("validate tables: invalid tasks table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", t.Tasks)
	}

	return nil
}
