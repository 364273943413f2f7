package config

import (
	"fmt"
)

func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Scan.Validate(); err != nil {
		return fmt.Errorf("scan config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("invalid log format: %s", l.Format)
	}

	if l.Output == "" {
		return fmt.Errorf("log output is required")
	}

	if l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}

	if l.MaxBackups < 0 {
		return fmt.Errorf("max_backups cannot be negative")
	}

	if l.MaxAge < 0 {
		return fmt.Errorf("max_age cannot be negative")
	}

	return nil
}

func (s *ScanConfig) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}

	if s.Workers > 256 {
		return fmt.Errorf("workers too large: %d", s.Workers)
	}

	return nil
}

func (o *OutputConfig) Validate() error {
	if o.MinOccurrences < 1 {
		return fmt.Errorf("min_occurrences must be at least 1, got %d", o.MinOccurrences)
	}

	return nil
}
