package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle|auto]",
	Short: "Show or set the color theme",
	Long: `Without an argument, prints the active theme: the saved preference, or the
terminal's background when nothing is saved. With light, dark or toggle the
preference is saved and every open window switches. auto forgets the saved
preference so the terminal background decides again.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), "toggle", "auto"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	current := e.pref.Load()
	if len(args) == 0 {
		return outputTheme(current, false)
	}
	if args[0] == "auto" {
		if err := e.pref.Reset(); err != nil {
			return err
		}
		e.logger.Debug("theme preference cleared")
		return outputTheme(e.pref.Load(), false)
	}

	next := current.Toggle()
	if args[0] != "toggle" {
		if next, err = theme.Parse(args[0]); err != nil {
			return err
		}
	}
	if err := e.pref.Save(next); err != nil {
		return err
	}
	e.logger.Debug("theme saved", "theme", next)
	return outputTheme(next, true)
}

func outputTheme(n theme.Name, saved bool) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"theme": n, "saved": saved})
	}
	if saved {
		output.Messagef(os.Stdout, "Theme set to %s", n)
		return nil
	}
	output.Messagef(os.Stdout, "%s", n)
	return nil
}
