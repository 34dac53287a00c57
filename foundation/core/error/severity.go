// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to prioritise errors in logs. Calculation
//              failures are expected outcomes and rank low; configuration and
//              internal failures rank higher.
// Author: msto63
// Version: v0.1.1
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-11-02 v0.1.1: Severity mapping for calculation codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers rejected input: the caller can fix it and retry
	SeverityLow Severity = iota

	// SeverityMedium covers numerical failures that need a different setting,
	// e.g. a higher working precision
	SeverityMedium

	// SeverityHigh covers configuration problems that stop a process starting
	SeverityHigh

	// SeverityCritical covers internal invariant violations
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodePrecisionFailure, CodeDomainError, CodeUnknown:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
