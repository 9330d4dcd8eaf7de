package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/theme"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long: `Displays a single task with its timestamps. On a terminal the details are
rendered as markdown in the current theme; --plain prints a field list.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("plain", false, "print fields without markdown rendering")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	id, err := e.store.Resolve(args[0])
	if err != nil {
		return err
	}
	t, _ := e.store.Find(id)
	now := time.Now()
	layout := e.cfg.DateLayout()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, layout)
		return nil
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		output.TaskDetail(os.Stdout, t, layout, now)
		return nil
	}
	return output.Markdown(os.Stdout, output.TaskMarkdown(t, layout, now), markdownStyle(e))
}

// markdownStyle follows the saved theme on a color terminal.
func markdownStyle(e *env) string {
	if colorDisabled() || !prompt.Interactive(os.Stdout) {
		return output.StyleNoTTY
	}
	if e.pref.Load() == theme.Dark {
		return output.StyleDark
	}
	return output.StyleLight
}
