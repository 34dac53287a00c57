// ============================================================================
// relativity - Arbitrary-precision special relativity toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and API server
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for all components
const (
	// Module version
	Module = "1.2.0"

	// Component versions
	Engine    = "1.2.0"
	Formatter = "1.1.0"
	API       = "1.0.0"
	CLI       = "1.1.0"
)

// These are overridden at build time with -ldflags "-X ...".
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "formatter":
		return Formatter
	case "api":
		return API
	case "cli":
		return CLI
	default:
		return Module
	}
}

// Info returns a one-line build description
func Info() string {
	return fmt.Sprintf("relativity %s (commit %s, built %s)", Module, Commit, BuildDate)
}
