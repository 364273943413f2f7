package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Output  OutputConfig  `mapstructure:"output"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`   // json or text
	Output     string `mapstructure:"output"`   // stdout, stderr, or file path
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type ScanConfig struct {
	// Workers is the number of concurrent frame decoders. 1 means fully
	// sequential processing. Results are accumulated in index-entry order
	// regardless of the worker count.
	Workers int `mapstructure:"workers"`
}

type OutputConfig struct {
	// SRT enables writing a SubRip subtitle file next to each input file.
	SRT bool `mapstructure:"srt"`
	// MinOccurrences filters subtitle entries to timecodes seen at least
	// this many times. The stdout report is never filtered.
	MinOccurrences int `mapstructure:"min_occurrences"`
}

// Load reads configuration from the given YAML file with DVSCAN_* environment
// overrides. An empty path loads defaults and environment only.
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	// Environment variable override
	viper.SetEnvPrefix("DVSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stderr")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("logging.max_age", 30)

	// Scan defaults
	viper.SetDefault("scan.workers", 1)

	// Output defaults
	viper.SetDefault("output.srt", false)
	viper.SetDefault("output.min_occurrences", 3)
}
