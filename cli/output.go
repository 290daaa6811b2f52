package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tudu-dev/tudu"
)

// Formatter formats results for output.
type Formatter interface {
	FormatTask(w io.Writer, task tudu.Task) error
	FormatList(w io.Writer, result *tudu.ListResult) error
	FormatCleared(w io.Writer, cleared int64) error
	FormatDeleted(w io.Writer, id int64) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// checkbox renders a task's done state.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// FormatTask formats a single task as a checklist line.
func (f *HumanFormatter) FormatTask(w io.Writer, task tudu.Task) error {
	_, _ = fmt.Fprintf(w, "- %s %d: %s\n", checkbox(task.Done), task.ID, task.Description)
	return nil
}

// FormatList formats list results as a checklist with a summary.
func (f *HumanFormatter) FormatList(w io.Writer, result *tudu.ListResult) error {
	if len(result.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found")
		return nil
	}

	var done int
	for i := range result.Items {
		item := &result.Items[i]
		_, _ = fmt.Fprintf(w, "- %s %d: %s\n", checkbox(item.Done), item.ID, item.Description)
		if item.Done {
			done++
		}
	}

	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "\n%d task(s), %d done\n", len(result.Items), done)

		if result.NextCursor != "" {
			_, _ = fmt.Fprintf(w, "Next page: use --cursor %q\n", result.NextCursor)
		}
	}

	return nil
}

// FormatCleared formats the result of a clear.
func (f *HumanFormatter) FormatCleared(w io.Writer, cleared int64) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Cleared %d task(s)\n", cleared)
	}
	return nil
}

// FormatDeleted formats the result of a delete.
func (f *HumanFormatter) FormatDeleted(w io.Writer, id int64) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Deleted: %d\n", id)
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(w io.Writer, task tudu.Task) error {
	return writeJSON(w, task)
}

// FormatList formats list results as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, result *tudu.ListResult) error {
	return writeJSON(w, result)
}

// FormatCleared formats the result of a clear as JSON.
func (f *JSONFormatter) FormatCleared(w io.Writer, cleared int64) error {
	output := struct {
		Cleared int64 `json:"cleared"`
	}{
		Cleared: cleared,
	}
	return writeJSON(w, output)
}

// FormatDeleted formats the result of a delete as JSON.
func (f *JSONFormatter) FormatDeleted(w io.Writer, id int64) error {
	output := struct {
		ID      int64 `json:"id"`
		Deleted bool  `json:"deleted"`
	}{
		ID:      id,
		Deleted: true,
	}
	return writeJSON(w, output)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
