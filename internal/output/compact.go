package output

import (
	"fmt"
	"io"
	"os"

	"github.com/twiced-technology-gmbh/tasklist/internal/journal"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task, layout string) {
	fmt.Fprintln(w, formatTaskLine(t))

	ts := "  created:" + t.CreatedAt.Format(layout)
	if t.CompletedAt != nil {
		ts += " completed:" + t.CompletedAt.Format(layout)
	}
	fmt.Fprintln(w, ts)
}

// CountersCompact renders the counters on one line.
func CountersCompact(w io.Writer, c task.Counters) {
	fmt.Fprintf(w, "total:%d pending:%d done:%d (%d%%)\n", c.Total, c.Pending, c.Done, c.Percent())
}

// HistoryCompact renders journal entries one per line.
func HistoryCompact(w io.Writer, entries []journal.Entry) {
	for _, e := range entries {
		fmt.Fprintln(w, e.Timestamp.Format("2006-01-02T15:04:05")+" "+e.Action+" "+ShortID(e.TaskID)+" "+e.Detail)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	return ShortID(t.ID) + " " + mark + " " + t.Title
}
