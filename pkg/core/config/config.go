// ============================================================================
// relativity - Arbitrary-precision special relativity toolkit
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration for the CLI and API server
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "RELATIVITY_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Precision PrecisionConfig `toml:"precision" yaml:"precision"`
	Display   DisplayConfig   `toml:"display" yaml:"display"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Series    SeriesConfig    `toml:"series" yaml:"series"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// PrecisionConfig holds the working precision of the calculation engine
type PrecisionConfig struct {
	Digits    int `toml:"digits" yaml:"digits"`
	MaxDigits int `toml:"max_digits" yaml:"max_digits"`
}

// DisplayConfig holds the defaults for rendering decimal results
type DisplayConfig struct {
	// Pointers so an explicit zero or false survives applyDefaults.
	SignificantPlaces     *int   `toml:"significant_places" yaml:"significant_places"`
	IgnoreChar            string `toml:"ignore_char" yaml:"ignore_char"`
	PreserveTrailingZeros bool   `toml:"preserve_trailing_zeros" yaml:"preserve_trailing_zeros"`
	ShowRoundingIndicator *bool  `toml:"show_rounding_indicator" yaml:"show_rounding_indicator"`
}

// Places returns the configured significant places, 2 when unset
func (d DisplayConfig) Places() int {
	if d.SignificantPlaces == nil {
		return 2
	}
	return *d.SignificantPlaces
}

// RoundingIndicator reports whether the rounding marker is enabled
func (d DisplayConfig) RoundingIndicator() bool {
	return d.ShowRoundingIndicator == nil || *d.ShowRoundingIndicator
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SeriesConfig holds trajectory sampling limits
type SeriesConfig struct {
	Workers   int `toml:"workers" yaml:"workers"`
	MaxPoints int `toml:"max_points" yaml:"max_points"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rerr.Newf("config file not found: %s", path).WithCode(rerr.CodeConfigError)
		}
		return nil, rerr.Wrap(err, "read config").WithCode(rerr.CodeConfigError)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml", "":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return nil, rerr.Newf("unsupported config format: %s", filepath.Ext(path)).
			WithCode(rerr.CodeConfigError)
	}
	if err != nil {
		return nil, rerr.Wrap(err, "failed to parse config").WithCode(rerr.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from RELATIVITY_CONFIG or a default
// location. Without any config file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/relativity.toml",
			"./configs/relativity.yaml",
			"./relativity.toml",
			filepath.Join(os.Getenv("HOME"), ".config/relativity/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "relativity"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Precision
	if c.Precision.Digits == 0 {
		c.Precision.Digits = 50
	}
	if c.Precision.MaxDigits == 0 {
		c.Precision.MaxDigits = 1000
	}

	// Display
	if c.Display.SignificantPlaces == nil {
		places := 2
		c.Display.SignificantPlaces = &places
	}
	if c.Display.ShowRoundingIndicator == nil {
		on := true
		c.Display.ShowRoundingIndicator = &on
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8085
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}

	// Series
	if c.Series.Workers == 0 {
		c.Series.Workers = 4
	}
	if c.Series.MaxPoints == 0 {
		c.Series.MaxPoints = 2000
	}
}

// Validate checks value ranges after defaults have been applied
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, reason string) error {
		return rerr.Newf("invalid %s: %s", field, reason).
			WithCode(rerr.CodeInvalidConfig).
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := log.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "unknown level")
	}
	if _, err := log.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown format")
	}
	if c.Precision.Digits < 1 {
		return invalid("precision.digits", c.Precision.Digits, "must be positive")
	}
	if c.Precision.Digits > c.Precision.MaxDigits {
		return invalid("precision.digits", c.Precision.Digits,
			fmt.Sprintf("exceeds max_digits %d", c.Precision.MaxDigits))
	}
	if places := c.Display.Places(); places < 0 {
		return invalid("display.significant_places", places, "must not be negative")
	} else if places > c.Precision.MaxDigits {
		return invalid("display.significant_places", places,
			fmt.Sprintf("exceeds max_digits %d", c.Precision.MaxDigits))
	}
	if ic := c.Display.IgnoreChar; ic != "" && (len(ic) != 1 || ic[0] < '0' || ic[0] > '9') {
		return invalid("display.ignore_char", ic, "must be a single digit")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, "out of range")
	}
	if c.Series.Workers < 1 {
		return invalid("series.workers", c.Series.Workers, "must be positive")
	}
	if c.Series.MaxPoints < 2 {
		return invalid("series.max_points", c.Series.MaxPoints, "must be at least 2")
	}
	return nil
}
