package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/noshow-cli/internal/config"
	"github.com/KaramelBytes/noshow-cli/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set noshow configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", c.InputPath)
		fmt.Fprintf(out, "plots_dir: %s\n", c.PlotsDir)
		fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		fmt.Fprintf(out, "show_label: %s\n", c.ShowLabel)
		fmt.Fprintf(out, "noshow_label: %s\n", c.NoShowLabel)
		fmt.Fprintf(out, "count_color: %s\n", c.CountColor)
		fmt.Fprintf(out, "figure_width_in: %.1f\n", c.FigureWidthIn)
		fmt.Fprintf(out, "figure_height_in: %.1f\n", c.FigureHeightIn)
		fmt.Fprintf(out, "pie_width_px: %d\n", c.PieWidthPx)
		fmt.Fprintf(out, "pie_height_px: %d\n", c.PieHeightPx)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the file alone so env and flag overrides are not persisted.
		base, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		next := *base
		switch key {
		case "input_path":
			next.InputPath = val
		case "plots_dir":
			next.PlotsDir = val
		case "delimiter":
			if val == "tab" {
				val = "\t"
			}
			next.Delimiter = val
		case "show_label":
			next.ShowLabel = val
		case "noshow_label":
			next.NoShowLabel = val
		case "count_color":
			if _, err := render.ParseColor(val); err != nil {
				return err
			}
			next.CountColor = val
		case "figure_width_in", "figure_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %w", key, err)
			}
			if key == "figure_width_in" {
				next.FigureWidthIn = f
			} else {
				next.FigureHeightIn = f
			}
		case "pie_width_px", "pie_height_px":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			if key == "pie_width_px" {
				next.PieWidthPx = i
			} else {
				next.PieHeightPx = i
			}
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				next.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
