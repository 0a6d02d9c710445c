// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

// =============================================================================
// INDICATOR BAR
// =============================================================================

// Bar fill characters, ASCII for any terminal.
const (
	barFull  = '#'
	barEmpty = '-'
)

// IndicatorBar renders a view.Bar as a bubbles progress bar filled with the
// bar's gradient.
func IndicatorBar(bar view.Bar, width int) string {
	if width <= 0 {
		return ""
	}
	g := styles.GradientColors(bar.Gradient)
	p := progress.New(
		progress.WithGradient(g.Start, g.End),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithFillCharacters(barFull, barEmpty),
	)
	return p.ViewAs(BarFraction(bar.Width))
}

// BarFraction converts a percentage width into the [0, 1] fraction a
// progress bar takes.
func BarFraction(width float64) float64 {
	if math.IsNaN(width) || width <= 0 {
		return 0
	}
	if width >= 100 {
		return 1
	}
	return width / 100
}

// VolumeColumnRows is the height of the volume column in lines.
const VolumeColumnRows = 4

// VolumeColumn renders the decorative volume bar as a column of rows lines,
// filled from the bottom.
func VolumeColumn(bar view.VolumeBar, rows int) string {
	if rows <= 0 {
		return ""
	}
	filled := FilledRows(bar.Height, rows)
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentGradient.End))
	empty := lipgloss.NewStyle().Foreground(styles.Overlay)

	lines := make([]string, rows)
	for i := 0; i < rows; i++ {
		if rows-i <= filled {
			lines[i] = fill.Render("##")
		} else {
			lines[i] = empty.Render("..")
		}
	}
	return strings.Join(lines, "\n")
}

// FilledRows is how many of rows a height percentage fills, at least one
// for any positive height.
func FilledRows(height float64, rows int) int {
	n := int(math.Round(BarFraction(height) * float64(rows)))
	if n == 0 && height > 0 {
		n = 1
	}
	return n
}
