package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
)

// ValidateTitle trims a title and rejects it when nothing is left.
func ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", clierr.New(clierr.InvalidInput, "title is empty: type a task before saving").
			WithDetails(map[string]any{"title": raw})
	}
	return title, nil
}

// ValidateEditable returns a TaskCompleted error when t must be reopened
// before its title can change.
func ValidateEditable(t Task) error {
	if !t.Completed {
		return nil
	}
	return clierr.Newf(clierr.TaskCompleted, "task %q is completed: reopen it to edit the title", t.Title).
		WithDetails(map[string]any{
			"id":    t.ID,
			"title": t.Title,
		})
}

// NotFound returns a TaskNotFound error for ref.
func NotFound(ref string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", ref).
		WithDetails(map[string]any{"id": ref})
}

// Ambiguous returns an AmbiguousTaskID error listing the matching ids.
func Ambiguous(ref string, matches []string) *clierr.Error {
	return clierr.Newf(clierr.AmbiguousTaskID, "task id %q matches %d tasks", ref, len(matches)).
		WithDetails(map[string]any{
			"id":      ref,
			"matches": matches,
		})
}
