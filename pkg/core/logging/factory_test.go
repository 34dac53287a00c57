package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/pkg/core/config"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("engine")

	if cfg.ComponentName != "engine" {
		t.Errorf("ComponentName = %v, want engine", cfg.ComponentName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestNewLogger_WritesToAllOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ComponentName:     "api",
		Level:             "warn",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("dropped")
	logger.Warn("kept")

	for name, buf := range map[string]*bytes.Buffer{"primary": &primary, "extra": &extra} {
		out := buf.String()
		if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
			t.Errorf("%s output = %q", name, out)
		}
		if !strings.Contains(out, "{api}") {
			t.Errorf("%s output missing logger name: %q", name, out)
		}
	}
}

func TestNewLogger_InvalidSettingsFallBack(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: "loud", Format: "xml", Output: io.Discard})

	if logger.GetLevel() != rlog.LevelInfo {
		t.Errorf("GetLevel() = %v, want info", logger.GetLevel())
	}
}

func TestFromConfig(t *testing.T) {
	general := config.Default().General

	logger := FromConfig(general, "cli", false)
	if logger.GetLevel() != rlog.LevelInfo {
		t.Errorf("GetLevel() = %v, want info", logger.GetLevel())
	}

	verbose := FromConfig(general, "cli", true)
	if !verbose.IsLevelEnabled(rlog.LevelDebug) {
		t.Error("verbose logger should enable debug")
	}
}
