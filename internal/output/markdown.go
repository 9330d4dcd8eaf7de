package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Glamour standard style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

const markdownWrap = 80

// TaskMarkdown builds the markdown document for a task.
func TaskMarkdown(t task.Task, layout string, now time.Time) string {
	var b strings.Builder

	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	fmt.Fprintf(&b, "# %s %s\n\n", mark, escapeMarkdown(t.Title))
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | `%s` |\n", t.ID)
	fmt.Fprintf(&b, "| State | **%s** |\n", State(t))
	fmt.Fprintf(&b, "| Created | %s (%s ago) |\n", t.CreatedAt.Format(layout), age(t.CreatedAt, now))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "| Completed | %s |\n", t.CompletedAt.Format(layout))
		fmt.Fprintf(&b, "| Lead time | %s |\n", FormatDuration(t.CompletedAt.Time().Sub(t.CreatedAt.Time())))
	}
	return b.String()
}

// Markdown renders md to w with the named glamour style.
func Markdown(w io.Writer, md, style string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"|", `\|`,
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
