package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Layout constants.
const (
	appTitle    = "tasklist"
	chromeLines = 8 // title, filter bar, counters, form, blank, help, error, padding
	minWidth    = 20
)

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.ticket != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.viewDialog())
	}

	sections := []string{
		a.styles.Title.Render(appTitle) + "  " + a.styles.Dim.Render(string(a.styles.Name)),
		a.viewFilterBar(),
		a.viewCounters(),
	}
	if a.mode == modeAdd {
		sections = append(sections, a.input.View())
	}
	sections = append(sections, "", a.viewTasks(), "", a.viewHelp())
	if a.err != nil {
		sections = append(sections, a.styles.Error.Render(truncate("Error: "+a.err.Error(), a.width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewFilterBar() string {
	counts := a.svc.Store().Counters()
	parts := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		label := fmt.Sprintf("%s %d", f.Label(), counts.Of(f))
		if f == a.filter {
			parts = append(parts, a.styles.FilterOn.Render(label))
		} else {
			parts = append(parts, a.styles.FilterOff.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) viewCounters() string {
	c := a.svc.Store().Counters()
	bar := a.progress.ViewAs(float64(c.Percent()) / 100) //nolint:mnd // percent to ratio
	summary := fmt.Sprintf(" %d%%  %d total · %d pending · %d done", c.Percent(), c.Total, c.Pending, c.Done)
	return bar + a.styles.Dim.Render(summary)
}

func (a *App) viewTasks() string {
	tasks := a.visible()
	if len(tasks) == 0 {
		msg := "No tasks yet. Press a to add one."
		if a.filter != task.FilterAll {
			msg = fmt.Sprintf("No %s tasks.", strings.ToLower(a.filter.Label()))
		}
		return a.styles.Dim.Render("  " + msg)
	}

	start, end := a.window(len(tasks))
	lines := make([]string, 0, end-start+2) //nolint:mnd // room for scroll indicators
	if start > 0 {
		lines = append(lines, a.styles.Dim.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, a.viewTask(tasks[i], i == a.cursor))
	}
	if end < len(tasks) {
		lines = append(lines, a.styles.Dim.Render(fmt.Sprintf("  ↓ %d more", len(tasks)-end)))
	}
	return strings.Join(lines, "\n")
}

// window returns the visible slice of rows around the cursor.
func (a *App) window(n int) (int, int) {
	rows := a.height - chromeLines
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := max(a.cursor-rows/2, 0) //nolint:mnd // keep the cursor centered
	end := min(start+rows, n)
	return end - rows, end
}

func (a *App) viewTask(t task.Task, selected bool) string {
	box := a.styles.Checkbox.Render("[ ]")
	if t.Completed {
		box = a.styles.CheckboxOn.Render("[x]")
	}

	pointer := "  "
	if selected {
		pointer = a.styles.Title.Render("> ")
	}

	if selected && a.mode == modeEdit && t.ID == a.editID {
		return pointer + box + " " + a.editor.View()
	}

	meta := t.CreatedAt.Format(a.layout) + " · " + date.Age(a.now().Sub(t.CreatedAt.Time()))
	if t.CompletedAt != nil {
		meta += " · done " + t.CompletedAt.Format(a.layout)
	}

	titleWidth := max(a.width-lipgloss.Width(meta)-10, minWidth) //nolint:mnd // pointer, checkbox and gaps
	title := truncate(t.Title, titleWidth)
	switch {
	case t.Completed:
		title = a.styles.Done.Render(title)
	case selected:
		title = a.styles.Selected.Render(title)
	default:
		title = a.styles.Text.Render(title)
	}

	return pointer + box + " " + title + "  " + a.styles.Dim.Render(meta)
}

func (a *App) viewHelp() string {
	if a.mode != modeList {
		return a.help.View(a.formKeys)
	}
	return a.help.View(a.keys)
}

func (a *App) viewDialog() string {
	req := a.ticket.Request()
	accent := a.styles.VariantColor(string(req.Variant))

	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(req.Title)
	content := title
	if req.Message != "" {
		content += "\n\n" + a.styles.Text.Render(req.Message)
	}

	var hint string
	if req.Kind == prompt.KindAlert {
		hint = "enter: " + strings.ToLower(req.ConfirmText)
	} else {
		hint = fmt.Sprintf("y/enter: %s  n/esc: %s",
			strings.ToLower(req.ConfirmText), strings.ToLower(req.CancelText))
	}
	content += "\n\n" + a.styles.Dim.Render(hint)

	return a.styles.Dialog.BorderForeground(accent).Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	// Trim runes from the end until the display width fits.
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
