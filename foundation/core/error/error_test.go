// File: error_test.go
// Title: Unit Tests for Core Error Implementation
// Description: Tests construction, wrapping, code matching and JSON output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-11-02

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("velocity too high")

	if err.Error() != "velocity too high" {
		t.Errorf("Error() = %q, want %q", err.Error(), "velocity too high")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("expected a captured stack trace")
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeVelocityExceedsC, SeverityLow},
		{CodeInvalidIgnoreChar, SeverityLow},
		{CodePrecisionFailure, SeverityMedium},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWrap_InheritsCodeAndDetails(t *testing.T) {
	inner := New("guard").WithCode(CodeVelocityExceedsC).WithDetail("velocity", "299792458")
	outer := Wrap(inner, "rapidity")

	if outer.Code() != CodeVelocityExceedsC {
		t.Errorf("Code() = %v, want %v", outer.Code(), CodeVelocityExceedsC)
	}
	if outer.Details()["velocity"] != "299792458" {
		t.Errorf("details not inherited: %v", outer.Details())
	}
	if outer.Error() != "rapidity: guard" {
		t.Errorf("Error() = %q", outer.Error())
	}
	if !errors.Is(outer, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := New("some message").WithCode(CodePrecisionFailure)
	wrapped := fmt.Errorf("outer: %w", err)

	if !errors.Is(wrapped, Sentinel(CodePrecisionFailure)) {
		t.Error("expected match on PRECISION_FAILURE")
	}
	if errors.Is(wrapped, Sentinel(CodeVelocityExceedsC)) {
		t.Error("unexpected match on VELOCITY_EXCEEDS_C")
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	err := Wrap(New("inner").WithCode(CodeDomainError), "outer")

	if !HasCode(err, CodeDomainError) {
		t.Error("HasCode should find DOMAIN_ERROR")
	}
	if GetCode(err) != CodeDomainError {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("plain errors should map to UNKNOWN")
	}
}

func TestString_SortsDetails(t *testing.T) {
	err := New("bad").WithCode(CodeValueOutOfRange).WithDetail("b", 2).WithDetail("a", 1)
	s := err.String()
	if !strings.Contains(s, "Details: {a=1, b=2}") {
		t.Errorf("String() = %q", s)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("bad char").WithCode(CodeInvalidIgnoreChar).WithOperation("format")
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal: %v", jerr)
	}

	var decoded map[string]interface{}
	if uerr := json.Unmarshal(data, &decoded); uerr != nil {
		t.Fatalf("Unmarshal: %v", uerr)
	}
	if decoded["code"] != "INVALID_IGNORE_CHAR" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["operation"] != "format" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}

func TestCode_IsCallerError(t *testing.T) {
	if !CodeInvalidIgnoreChar.IsCallerError() {
		t.Error("INVALID_IGNORE_CHAR is a caller error")
	}
	if CodeVelocityExceedsC.IsCallerError() {
		t.Error("VELOCITY_EXCEEDS_C is not a malformed request")
	}
}
