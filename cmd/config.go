package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:       "get KEY",
	Short:     "Get a configuration value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys,
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(config.Keys)+2) //nolint:mnd // version and dir
		m["version"] = cfg.Version
		m["dir"] = cfg.Dir()
		for _, key := range config.Keys {
			m[key], _ = cfg.Get(key)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	fmt.Fprintf(os.Stdout, "%-20s %d\n", "version", cfg.Version)
	fmt.Fprintf(os.Stdout, "%-20s %s\n", "dir", cfg.Dir())
	for _, key := range config.Keys {
		val, _ := cfg.Get(key)
		fmt.Fprintf(os.Stdout, "%-20s %s\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	val, _ := cfg.Get(key)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": val})
	}

	output.Messagef(os.Stdout, "Set %s = %s", key, formatConfigValue(val))
	return nil
}

func formatConfigValue(val string) string {
	if val == "" {
		return "--"
	}
	return val
}
