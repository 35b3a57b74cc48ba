// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package config handles loading of paraforge settings.
package config

import (
	"errors"
	"fmt"

	"github.com/gviegas/paraforge/internal/logger"
)

// Config holds all settings.
type Config struct {
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Asset   AssetConfig   `yaml:"asset" toml:"asset"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // glb or json
	Pretty bool   `yaml:"pretty" toml:"pretty"` // json only
	Path   string `yaml:"path" toml:"path"`     // empty means <generator>.<format>; "-" is stdout
}

// AssetConfig holds metadata written to generated assets.
type AssetConfig struct {
	Generator string `yaml:"generator" toml:"generator"`
	Copyright string `yaml:"copyright" toml:"copyright"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Output formats.
const (
	FormatGLB  = "glb"
	FormatJSON = "json"
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatGLB,
		},
		Asset: AssetConfig{
			Generator: "paraforge",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// FileConfig returns the logger file settings.
func (l *LoggingConfig) FileConfig() logger.FileConfig {
	fc := logger.DefaultFileConfig(l.File)
	if l.MaxSizeMB > 0 {
		fc.MaxSizeMB = l.MaxSizeMB
	}
	if l.MaxBackups > 0 {
		fc.MaxBackups = l.MaxBackups
	}
	return fc
}

// Validate checks that c holds usable values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Output.Format {
	case FormatGLB, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if c.Output.Pretty && c.Output.Format != FormatJSON {
		errs = append(errs, errors.New("output.pretty: only valid with json format"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		errs = append(errs, errors.New("logging: negative rotation limits"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
