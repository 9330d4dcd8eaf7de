package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tasklist directory here",
	Long: `Creates a .tasklist directory with config.yml and a data/ subdirectory.
Commands run below this directory use its list instead of the one in
~/.config/tasklist.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("filter", "", "default filter for list and the TUI (all, pending, done)")
	initCmd.Flags().String("data-dir", "", "directory for the slot files, relative to the tasklist directory")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.ConfigExists, "tasklist already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	if v, _ := cmd.Flags().GetString("filter"); v != "" {
		if _, err := task.ParseFilter(v); err != nil {
			return err
		}
	}

	cfg, err := config.Init(absDir)
	if err != nil {
		return err
	}

	if err := applyInitFlags(cmd, cfg); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"config": cfg.ConfigPath(),
			"data":   cfg.DataPath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized tasklist in %s", absDir)
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Data:   %s", cfg.DataPath())
	return nil
}

// applyInitFlags stores flag overrides in the freshly written config.
func applyInitFlags(cmd *cobra.Command, cfg *config.Config) error {
	changed := false
	if v, _ := cmd.Flags().GetString("filter"); v != "" {
		if err := cfg.Set("tui.default_filter", v); err != nil {
			return err
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		if err := cfg.Set("data_dir", v); err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.DataPath(), 0o750); err != nil { //nolint:mnd // directory mode
			return fmt.Errorf("creating data directory: %w", err)
		}
		changed = true
	}
	if !changed {
		return nil
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
