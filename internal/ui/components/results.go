// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

// =============================================================================
// RESULTS CARD
// =============================================================================

// ResultsCard draws the results region from view.Results.
type ResultsCard struct {
	Width int
	theme *styles.Theme
}

// NewResultsCard creates a results card.
func NewResultsCard(theme *styles.Theme) *ResultsCard {
	return &ResultsCard{Width: 80, theme: theme}
}

// View renders r.
func (c *ResultsCard) View(r *view.Results) string {
	if r == nil {
		return ""
	}

	width := c.Width
	if width < 40 {
		width = 40
	}
	inner := width - 6

	sections := []string{
		c.renderHeading(r, inner),
		c.renderStats(r, inner),
		c.renderIndicators(r, inner),
	}
	return c.theme.ResultsCard.Width(width - 2).Render(strings.Join(sections, "\n\n"))
}

// renderHeading is the ticker and badge on one line, the price line below.
func (c *ResultsCard) renderHeading(r *view.Results, inner int) string {
	ticker := c.theme.ResultTicker.Render(r.Ticker)
	badge := c.theme.BadgeStyle(r.BadgeClass).Render(r.BadgeText)

	gap := inner - lipgloss.Width(ticker) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	top := ticker + strings.Repeat(" ", gap) + badge
	price := styles.RenderTone(r.PriceColor, r.PriceLine)
	return top + "\n" + price
}

func (c *ResultsCard) renderStats(r *view.Results, inner int) string {
	stat := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			c.theme.StatLabel.Render(label),
			c.theme.StatValue.Render(value),
		)
	}

	cells := []string{
		stat("Prediction", r.PredictionValue),
		stat("Confidence", r.Confidence),
		stat("Precision", r.Precision),
		lipgloss.JoinVertical(lipgloss.Left,
			c.theme.StatLabel.Render("Change"),
			lipgloss.NewStyle().Bold(true).Foreground(styles.ToneColor(r.ChangeColor)).Render(r.Change),
		),
	}

	// Two per row when narrow.
	if inner < 56 {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, pad(cells[0], inner/2), cells[1])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, pad(cells[2], inner/2), cells[3])
		return row1 + "\n" + row2
	}
	colWidth := inner / len(cells)
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = pad(cell, colWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

func (c *ResultsCard) renderIndicators(r *view.Results, inner int) string {
	barWidth := inner - lipgloss.Width(c.theme.IndicatorLabel.Render("")) - lipgloss.Width(c.theme.IndicatorValue.Render("")) - 2
	if barWidth < 8 {
		barWidth = 8
	}

	row := func(label, value string, bar view.Bar, note string) string {
		line := c.theme.IndicatorLabel.Render(label) +
			c.theme.IndicatorValue.Render(value) + "  " +
			IndicatorBar(bar, barWidth)
		if note != "" {
			line += "\n" + c.theme.ErrorTip.Render(strings.Repeat(" ", 20)+note)
		}
		return line
	}

	rows := []string{
		row("SMA 10", r.SMA10, r.SMA10Bar, ""),
		row("SMA 50", r.SMA50, r.SMA50Bar, ""),
		row("RSI", r.RSI, r.RSIBar, rsiNote(r.RSIBar.Gradient)),
	}

	volume := lipgloss.JoinHorizontal(lipgloss.Bottom,
		c.theme.IndicatorLabel.Render("Volume"),
		c.theme.IndicatorValue.Render(r.Volume),
		"  ",
		VolumeColumn(r.VolumeBar, VolumeColumnRows),
	)
	rows = append(rows, volume)

	return strings.Join(rows, "\n")
}

func rsiNote(g view.Gradient) string {
	switch g {
	case view.GradientOversold:
		return "oversold"
	case view.GradientOverbought:
		return "overbought"
	}
	return ""
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
