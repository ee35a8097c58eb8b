package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by output_format.
var Formats = []string{"table", "markdown", "json", "yaml"}

// Global configuration structure.
type Global struct {
	// DatasetPath is used when --data is not given.
	DatasetPath    string `mapstructure:"dataset_path" yaml:"dataset_path"`
	OutputFormat   string `mapstructure:"output_format" yaml:"output_format"`
	ParallelGroups int    `mapstructure:"parallel_groups" yaml:"parallel_groups"`
	ReportsDir     string `mapstructure:"reports_dir" yaml:"reports_dir"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
}

// Validate rejects values the commands cannot act on.
func (c *Global) Validate() error {
	if !slices.Contains(Formats, c.OutputFormat) {
		return fmt.Errorf("output_format %q: want one of %v", c.OutputFormat, Formats)
	}
	if c.ParallelGroups < 0 {
		return fmt.Errorf("parallel_groups must be >= 0, got %d", c.ParallelGroups)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cohort"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cohort/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
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
// Precedence: env > config file > defaults. Command flags are applied by the
// caller on top of the result.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("COHORT")
	v.AutomaticEnv()

	v.SetDefault("dataset_path", "")
	v.SetDefault("output_format", "table")
	v.SetDefault("parallel_groups", 0)
	v.SetDefault("reports_dir", "")
	v.SetDefault("log_level", "info")

	// An explicit file must load; the default one is read only if present.
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		if p := filepath.Join(dir, "config.yaml"); fileExists(p) {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ReportsDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		c.ReportsDir = filepath.Join(dir, "reports")
	}
	return &c, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
