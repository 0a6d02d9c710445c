// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar.
type Header struct {
	Title    string
	Subtitle string
	APIURL   string
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a header with default titles.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "stockpulse",
		Subtitle: "AI stock predictions",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the boxed header.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	accent := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accent.Render("< ") + h.theme.HeaderTitle.Render(h.Title) + accent.Render(" >")

	sub := h.Subtitle
	if h.APIURL != "" {
		sub += "  " + h.APIURL
	}

	center := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center)
	content := lipgloss.JoinVertical(lipgloss.Center,
		center.Render(brand),
		center.Render(h.theme.HeaderSubtitle.Render(sub)),
	)

	return h.theme.Header.Width(width - 2).Render(content)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	return h.theme.HeaderTitle.Render("<"+h.Title+">") + " " + h.theme.HeaderSubtitle.Render(h.Subtitle)
}
