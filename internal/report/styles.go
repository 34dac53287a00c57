// ============================================================================
// relativity - Arbitrary-precision special relativity toolkit
// ============================================================================
//
// Package:     report
// Description: Styles for CLI result blocks
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Block styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	UnitStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	NoteStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	// RoundedStyle marks values whose display dropped digits
	RoundedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Error styles
var (
	ErrorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)

	ErrorCodeStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)
