// ============================================================================
// relativity - Arbitrary-precision special relativity toolkit
// ============================================================================
//
// Package:     report
// Description: Renders labelled calculation results for the terminal
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

// Package report renders calculation results as labelled blocks, either
// styled with lipgloss or as plain "label: value" lines for scripts.
package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/internal/display"
)

// Row is one labelled value
type Row struct {
	Label string
	Value string
	Unit  string
}

// Block is a titled group of rows with optional trailing notes
type Block struct {
	Title string
	Rows  []Row
	Notes []string
}

// Add appends a row and returns the block for chaining
func (b *Block) Add(label, value, unit string) *Block {
	b.Rows = append(b.Rows, Row{Label: label, Value: value, Unit: unit})
	return b
}

// Note appends a note line
func (b *Block) Note(text string) *Block {
	b.Notes = append(b.Notes, text)
	return b
}

// Renderer turns blocks into terminal text
type Renderer struct {
	plain bool
}

// NewRenderer creates a renderer; plain output carries no styling
func NewRenderer(plain bool) *Renderer {
	return &Renderer{plain: plain}
}

// Render renders a block
func (r *Renderer) Render(b Block) string {
	width := 0
	for _, row := range b.Rows {
		width = max(width, lipgloss.Width(row.Label))
	}

	if r.plain {
		var sb strings.Builder
		if b.Title != "" {
			sb.WriteString(b.Title + "\n")
		}
		for _, row := range b.Rows {
			sb.WriteString(row.Label + ":" + strings.Repeat(" ", width-lipgloss.Width(row.Label)+1) + row.Value)
			if row.Unit != "" {
				sb.WriteString(" " + row.Unit)
			}
			sb.WriteByte('\n')
		}
		for _, n := range b.Notes {
			sb.WriteString(n + "\n")
		}
		return sb.String()
	}

	lines := make([]string, 0, len(b.Rows)+len(b.Notes)+1)
	if b.Title != "" {
		lines = append(lines, TitleStyle.Render(b.Title))
	}
	for _, row := range b.Rows {
		label := LabelStyle.Width(width + 2).Render(row.Label + ":")
		value := ValueStyle.Render(row.Value)
		if strings.HasSuffix(row.Value, display.RoundingIndicator) {
			value = ValueStyle.Render(strings.TrimSuffix(row.Value, display.RoundingIndicator)) +
				RoundedStyle.Render(display.RoundingIndicator)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, label, value)
		if row.Unit != "" {
			line += " " + UnitStyle.Render(row.Unit)
		}
		lines = append(lines, line)
	}
	for _, n := range b.Notes {
		lines = append(lines, NoteStyle.Render(n))
	}
	return PanelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// RenderError renders err with its code
func (r *Renderer) RenderError(err error) string {
	code := rerr.GetCode(err)
	if r.plain {
		return "error [" + string(code) + "]: " + err.Error() + "\n"
	}
	body := ErrorCodeStyle.Render(string(code)) + "\n" + err.Error()
	return ErrorPanelStyle.Render(body) + "\n"
}
