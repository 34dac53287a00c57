// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the relativity toolkit.
//              Codes classify failures so callers can branch without parsing
//              messages, and the HTTP layer can map them to status codes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-11-02 v0.2.0: Replaced platform codes with calculation codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Input normalization
	CodeInvalidInputType Code = "INVALID_INPUT_TYPE"
	CodeInvalidPrecision Code = "INVALID_PRECISION"

	// Physics guards
	CodeVelocityExceedsC Code = "VELOCITY_EXCEEDS_C"
	CodePrecisionFailure Code = "PRECISION_FAILURE"
	CodeDomainError      Code = "DOMAIN_ERROR"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"

	// Formatting
	CodeInvalidIgnoreChar Code = "INVALID_IGNORE_CHAR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsCallerError reports whether the code describes a malformed request rather
// than a physically or numerically impossible one.
func (c Code) IsCallerError() bool {
	switch c {
	case CodeInvalidInputType, CodeInvalidPrecision, CodeInvalidIgnoreChar,
		CodeValueOutOfRange, CodeInvalidConfig:
		return true
	default:
		return false
	}
}
