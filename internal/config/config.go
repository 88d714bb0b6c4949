package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultInputFile is the dataset looked up in the working directory when no
// input path is configured.
const DefaultInputFile = "noshowappointments-kagglev2-may-2016.csv"

// Global configuration structure.
type Global struct {
	InputPath string `mapstructure:"input_path" yaml:"input_path"`
	PlotsDir  string `mapstructure:"plots_dir" yaml:"plots_dir"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Outcome column labels for the two cohorts
	ShowLabel   string `mapstructure:"show_label" yaml:"show_label"`
	NoShowLabel string `mapstructure:"noshow_label" yaml:"noshow_label"`

	// Chart appearance
	CountColor     string  `mapstructure:"count_color" yaml:"count_color"`
	FigureWidthIn  float64 `mapstructure:"figure_width_in" yaml:"figure_width_in"`
	FigureHeightIn float64 `mapstructure:"figure_height_in" yaml:"figure_height_in"`
	PieWidthPx     int     `mapstructure:"pie_width_px" yaml:"pie_width_px"`
	PieHeightPx    int     `mapstructure:"pie_height_px" yaml:"pie_height_px"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Global {
	return &Global{
		InputPath:      DefaultInputFile,
		PlotsDir:       "Plots",
		Delimiter:      ",",
		ShowLabel:      "No",
		NoShowLabel:    "Yes",
		CountColor:     "4682b4", // steelblue
		FigureWidthIn:  12,
		FigureHeightIn: 8,
		PieWidthPx:     1000,
		PieHeightPx:    800,
		LogLevel:       "info",
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".noshow"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.noshow/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (NOSHOW_*, optionally from ./.env) > config file > defaults.
// Flag overrides are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()
	return load(cfgFile, true)
}

// LoadFile loads the config file over the defaults and ignores NOSHOW_*
// variables. `config set` edits this view so overrides never reach disk.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("NOSHOW")
		v.AutomaticEnv()
	}

	d := Default()
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("plots_dir", d.PlotsDir)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("show_label", d.ShowLabel)
	v.SetDefault("noshow_label", d.NoShowLabel)
	v.SetDefault("count_color", d.CountColor)
	v.SetDefault("figure_width_in", d.FigureWidthIn)
	v.SetDefault("figure_height_in", d.FigureHeightIn)
	v.SetDefault("pie_width_px", d.PieWidthPx)
	v.SetDefault("pie_height_px", d.PieHeightPx)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no chart can be rendered with.
func (c *Global) Validate() error {
	if c.ShowLabel == c.NoShowLabel {
		return fmt.Errorf("show_label and noshow_label must differ (both %q)", c.ShowLabel)
	}
	if c.FigureWidthIn <= 0 || c.FigureHeightIn <= 0 {
		return fmt.Errorf("figure size must be positive: %.1fx%.1f in", c.FigureWidthIn, c.FigureHeightIn)
	}
	if c.PieWidthPx <= 0 || c.PieHeightPx <= 0 {
		return fmt.Errorf("pie size must be positive: %dx%d px", c.PieWidthPx, c.PieHeightPx)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character: %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter.
func (c *Global) DelimiterRune() rune {
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return ','
	}
	return r[0]
}
