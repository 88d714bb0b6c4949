package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/noshow-cli/internal/config"
	"github.com/KaramelBytes/noshow-cli/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	plotsDir string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var warn = color.New(color.FgYellow)

var rootCmd = &cobra.Command{
	Use:   "noshow",
	Short: "Compare patients who kept their appointment with those who did not",
	Long: `noshow loads a medical appointment export, splits it into the Show and NoShow
cohorts and writes one annotated chart per attribute (Hypertension, Diabetes,
Alcoholism, Handicap, SMS_received) plus an appointment weekday breakdown.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.noshow/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&plotsDir, "plots-dir", "", "directory for generated charts (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in settings
		warn.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("plots-dir") && plotsDir != "" {
		cfg.PlotsDir = plotsDir
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if !logging.SetLevel(level) {
		warn.Fprintf(os.Stderr, "⚠ Warning: unknown log_level %q, using info\n", level)
		logging.SetLevel("info")
	}
}

// settings returns the loaded configuration, or the defaults when the
// command runs without initialization.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}
