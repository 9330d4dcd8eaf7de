package task

import (
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// New builds a pending task. The title must already be validated.
func New(id, title string, now date.Millis) Task {
	return Task{
		ID:        id,
		Title:     title,
		CreatedAt: now,
	}
}

// SetCompleted moves t to the given completion state and keeps CompletedAt
// in step with it:
//   - Sets CompletedAt to now on every transition into completed.
//   - Clears CompletedAt when reopening.
func SetCompleted(t *Task, completed bool, now date.Millis) {
	t.Completed = completed
	if completed {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}

// Consistent reports whether t satisfies the completion invariant.
func (t Task) Consistent() bool {
	if t.Completed {
		return t.CompletedAt != nil
	}
	return t.CompletedAt == nil
}
