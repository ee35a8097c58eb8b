package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/cohort-cli/internal/config"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set cohort configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "dataset_path: %s\n", cfg.DatasetPath)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if cfg.ParallelGroups > 0 {
			fmt.Fprintf(out, "parallel_groups: %d\n", cfg.ParallelGroups)
		} else {
			fmt.Fprintf(out, "parallel_groups: 0 (one per CPU, currently %d)\n", parallelism())
		}
		fmt.Fprintf(out, "reports_dir: %s\n", cfg.ReportsDir)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "dataset_path":
			next.DatasetPath = val
		case "output_format":
			f, err := render.ParseFormat(val)
			if err != nil {
				return err
			}
			next.OutputFormat = string(f)
		case "parallel_groups":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for parallel_groups: %v", val)
			}
			next.ParallelGroups = i
		case "reports_dir":
			next.ReportsDir = val
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		*cfg = next
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
