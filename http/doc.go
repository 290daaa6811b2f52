// Package http provides the REST API for tudu task lists.
//
// The API is served by the tudu serve command and exposes the task service
// over chi routes:
//
//	GET    /tasks             list tasks (query: filter, limit, cursor)
//	POST   /tasks             create a task from {"description": ...}
//	DELETE /tasks             remove all tasks
//	GET    /tasks/{id}        fetch a single task
//	DELETE /tasks/{id}        remove a task
//	POST   /tasks/{id}/done   mark a task done
//	POST   /tasks/{id}/undone reopen a task
//
// Errors are returned as a JSON envelope {"error": code, "message": text}
// with 404 for unknown task ids and 400 for invalid input.
package http
