package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/journal"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// ShortIDLen is how many id characters tables show.
const ShortIDLen = 8

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle   = lipgloss.NewStyle().Bold(true)

	// State colors aligned with the TUI palette.
	stateStyles = map[string]lipgloss.Style{
		"pending": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"done":    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	actionStyles = map[string]lipgloss.Style{
		"add":    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"toggle": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"edit":   lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		"remove": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	boldStyle = lipgloss.NewStyle()
	stateStyles = map[string]lipgloss.Style{}
	actionStyles = map[string]lipgloss.Style{}
}

// ShortID returns the leading characters of id used for display. Any unique
// prefix is accepted back by commands taking an ID.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= ShortIDLen {
		return id
	}
	return string(r[:ShortIDLen])
}

// State returns "done" or "pending".
func State(t task.Task) string {
	if t.Completed {
		return "done"
	}
	return "pending"
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task, layout string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, stateW, titleW := 4, 9, 7
	for _, t := range tasks {
		idW = max(idW, len(ShortID(t.ID))+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		idW, "ID", stateW, "STATE", titleW, "TITLE", "CREATED")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		row := fmt.Sprintf("%s %s %s %s",
			padRight(ShortID(t.ID), idW),
			padRight(styledValue(State(t), stateStyles), stateW),
			padRight(truncate(t.Title, titleW-pad), titleW),
			t.CreatedAt.Format(layout))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task, layout string, now time.Time) {
	titleLine := "Task " + ShortID(t.ID) + ": " + t.Title
	fmt.Fprintln(w, boldStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", t.ID)
	printField(w, "State", styledValue(State(t), stateStyles))
	printField(w, "Created", t.CreatedAt.Format(layout)+dimStyle.Render(" ("+age(t.CreatedAt, now)+" ago)"))
	if t.CompletedAt != nil {
		printField(w, "Completed", t.CompletedAt.Format(layout))
		printField(w, "Lead time", FormatDuration(t.CompletedAt.Time().Sub(t.CreatedAt.Time())))
	} else {
		printField(w, "Completed", dimStyle.Render("--"))
	}
}

// CountersTable renders the total/pending/done counters.
func CountersTable(w io.Writer, c task.Counters) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s %6s", "STATE", "COUNT")))
	fmt.Fprintf(w, "%s %6d\n", padRight("total", 10), c.Total) //nolint:mnd // column width
	fmt.Fprintf(w, "%s %6d\n", padRight(styledValue("pending", stateStyles), 10), c.Pending) //nolint:mnd // column width
	fmt.Fprintf(w, "%s %6d\n", padRight(styledValue("done", stateStyles), 10), c.Done)       //nolint:mnd // column width
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d%% complete\n", c.Percent())
}

// HistoryTable renders journal entries, oldest first.
func HistoryTable(w io.Writer, entries []journal.Entry, layout string) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	header := fmt.Sprintf("%-16s %-8s %-*s %s", "WHEN", "ACTION", ShortIDLen+1, "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		row := fmt.Sprintf("%-16s %s %s %s",
			date.FromTime(e.Timestamp).Format(layout),
			padRight(styledValue(e.Action, actionStyles), 8), //nolint:mnd // column width
			padRight(ShortID(e.TaskID), ShortIDLen+1),
			e.Detail)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// FormatDuration renders a duration as human-readable "Xd Yh" or "Xh Ym".
func FormatDuration(d time.Duration) string {
	const hoursPerDay = 24
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if days > 0 {
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h"
	}
	minutes := int(d.Minutes()) % 60 //nolint:mnd // 60 minutes per hour
	return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
}

func age(m date.Millis, now time.Time) string {
	return date.Age(now.Sub(m.Time()))
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(max(maxLen-3, 0), len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
