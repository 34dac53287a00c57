// Package error provides the structured error type shared by all relativity
// packages.
//
// Package: error
// Title: Relativity Error Handling
// Description: Implements an error type carrying a code, a severity, free-form
//
//	details and an optional cause. Calculation packages return these
//	errors synchronously; only the outer layers (CLI, HTTP API) log
//	or render them.
//
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-11-02 v0.2.0: Reduced to the relativity taxonomy, errors.Is by code
//
// Usage:
//
//	import rerr "github.com/msto63/relativity/foundation/core/error"
//
//	err := rerr.New("velocity must be below c").
//		WithCode(rerr.CodeVelocityExceedsC).
//		WithDetail("velocity", v.String())
//
//	if errors.Is(err, rerr.Sentinel(rerr.CodeVelocityExceedsC)) {
//		// physically invalid input
//	}
//
// Errors compare equal under errors.Is when their codes match, so packages can
// publish code-only sentinels without tying callers to message text.
package error
