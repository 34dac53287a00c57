// ============================================================================
// relativity - Arbitrary-precision special relativity toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	ComponentName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format
	Format string // "json" or "text" (default: json)

	// Output writer (default: stderr, so stdout stays free for results)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(componentName string) LoggerConfig {
	return LoggerConfig{
		ComponentName: componentName,
		Level:         "info",
		Format:        "json",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *rlog.Logger {
	level, err := rlog.ParseLevel(cfg.Level)
	if err != nil {
		level = rlog.LevelInfo
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := rlog.ParseFormat(cfg.Format)
	if err != nil {
		format = rlog.FormatJSON
	}

	return rlog.NewWithConfig(rlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ComponentName,
		EnableCaller: level <= rlog.LevelDebug,
	})
}

// FromConfig builds the logger described by the general config section.
// verbose forces debug level regardless of the configured level.
func FromConfig(general config.GeneralConfig, component string, verbose bool) *rlog.Logger {
	cfg := LoggerConfig{
		ComponentName: general.Name,
		Level:         general.LogLevel,
		Format:        general.LogFormat,
	}
	if component != "" {
		cfg.ComponentName = general.Name + "." + component
	}
	if verbose {
		cfg.Level = "debug"
	}
	return NewLogger(cfg)
}

// NewSimpleLogger creates a logger with default settings
func NewSimpleLogger(componentName string) *rlog.Logger {
	return NewLogger(DefaultLoggerConfig(componentName))
}
