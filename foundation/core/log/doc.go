// Package log provides structured logging for the relativity CLI and HTTP API.
//
// Package: log
// Title: Structured Logging
// Description: Leveled logger with contextual fields, JSON and text output and
//
//	operation timers. Calculation packages never log; the outer
//	layers record requests, failures and timings through this
//	package.
//
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-11-02 v0.2.0: Dropped async buffering and audit level, sorted text fields
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatText,
//		Name:   "relativity",
//	})
//	logger.Info("calculation finished", log.Fields{"op": "flip-and-burn"})
//
//	timer := logger.StartTimer("twin-paradox")
//	defer timer.Stop()
package log
