// Package config loads and validates the CLI configuration from a config
// file, environment variables and defaults.
//
// Precedence (highest to lowest):
//  1. Environment variables (ARRAYINFO_*)
//  2. Configuration file
//  3. Default values
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-arrayio/codec/matfile"
)

// Config is the complete arrayinfo configuration.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging"`

	// Formats holds per-format options, keyed by format. Each codec defines
	// its own option set and only the section for a registered codec is used.
	Formats FormatsConfig `mapstructure:"formats"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Format selects the log encoding: console or json.
	Format string `mapstructure:"format" validate:"required,oneof=console json"`
}

// FormatsConfig carries format-specific option sections.
type FormatsConfig struct {
	// Mat contains mat-file options. See matOptions for the recognized keys.
	Mat map[string]any `mapstructure:"mat"`
}

// matOptions is the decoded shape of the "formats.mat" section.
type matOptions struct {
	// Description overrides the header description text written into new
	// mat files.
	Description string `mapstructure:"description"`
}

// Load reads the configuration. An empty configPath searches the working
// directory for arrayinfo.{yaml,toml,json}; a missing file is not an error,
// defaults and environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ARRAYINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults registered with viper so environment overrides apply even
	// when no config file is present.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("arrayinfo")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// MatFileOptions decodes the "formats.mat" section into mat-file codec
// options.
func MatFileOptions(cfg *Config) ([]matfile.Option, error) {
	var opts matOptions
	if err := mapstructure.Decode(cfg.Formats.Mat, &opts); err != nil {
		return nil, fmt.Errorf("invalid mat format options: %w", err)
	}
	var out []matfile.Option
	if opts.Description != "" {
		out = append(out, matfile.WithDescription(opts.Description))
	}
	return out, nil
}
