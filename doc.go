// Package tudu provides a small task-list library with pluggable SQL
// storage backends.
//
// Tudu implements the core task operations (add, complete, reopen, remove,
// clear, list) on top of a TaskRepo interface with two implementations:
// PostgreSQL (pgx) and SQLite (modernc.org/sqlite). Which backend is used
// is a runtime configuration choice, so a single binary serves both.
//
// # Key Components
//
//   - TaskService: Main service wrapping a TaskRepo with input validation
//   - TaskRepo: Interface for task persistence (PostgreSQL, SQLite)
//   - Filter: Task list filtering (all, pending, done)
//
// # Example Usage
//
//	service, err := tudu.NewTaskService(repo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add a task
//	task, err := service.Add(ctx, "write the report")
//
//	// Mark it done
//	task, err = service.Complete(ctx, task.ID)
//
// See the database package for backend construction and the cmd/tudu
// package for the command-line interface.
package tudu
