// File: logger_test.go
// Title: Unit Tests for Structured Logger
// Description: Tests level filtering, derived loggers, formatters and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-11-02

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf, Name: "test"}), buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)

	logger.WithRequestID("req-1").Info("calculated", Fields{"op": "lorentz"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	tests := map[string]interface{}{
		"message":    "calculated",
		"level":      "info",
		"logger":     "test",
		"request_id": "req-1",
		"op":         "lorentz",
	}
	for key, want := range tests {
		if decoded[key] != want {
			t.Errorf("%s = %v, want %v", key, decoded[key], want)
		}
	}
}

func TestLogger_TextFieldsSorted(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)

	logger.Info("point", Fields{"z": 1, "a": 2})

	if !strings.Contains(buf.String(), "[a=2 z=1]") {
		t.Errorf("fields not sorted: %q", buf.String())
	}
}

func TestLogger_DerivedLoggersDoNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(FormatText, LevelInfo)
	child := parent.WithField("component", "api").WithName("child")

	parent.Info("from parent")
	if strings.Contains(buf.String(), "component=api") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}

	buf.Reset()
	child.Info("from child")
	if !strings.Contains(buf.String(), "component=api") || !strings.Contains(buf.String(), "{child}") {
		t.Errorf("child output missing context: %q", buf.String())
	}
}

func TestLogger_ErrorWithErr(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)

	logger.ErrorWithErr("failed", errors.New("boom"))

	if !strings.Contains(buf.String(), `error="boom"`) {
		t.Errorf("error not rendered: %q", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, _ := newBufferLogger(FormatText, LevelInfo)
	logger.SetLevel(LevelError)

	if logger.IsLevelEnabled(LevelWarn) {
		t.Error("warn should be disabled after SetLevel(error)")
	}
	if logger.GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v", logger.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"err", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestTimer_StopLogsOnce(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelDebug)
	timer := logger.StartTimer("flip-and-burn")

	if !timer.IsRunning() {
		t.Fatal("timer should be running")
	}
	timer.Stop()
	if second := timer.Stop(); second != 0 {
		t.Errorf("second Stop() = %v, want 0", second)
	}
	if strings.Count(buf.String(), "flip-and-burn completed") != 1 {
		t.Errorf("expected one completion line: %q", buf.String())
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelDebug)
	logger.StartTimer("rapidity").StopWithError(errors.New("precision"))

	if !strings.Contains(buf.String(), "[ERR]") || !strings.Contains(buf.String(), "rapidity failed") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
