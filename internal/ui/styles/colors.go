// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the stockpulse screen.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/view"
)

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, badges, focused chip
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, ticker, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Success - Non-negative price change, "up" style predictions
var Success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}

// Danger - Negative price change, errors
var Danger = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// DangerDeep - Error box background
var DangerDeep = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#450A0A"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Headers and status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, empty bar track
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// GRADIENTS
// =============================================================================

// Gradient is a two-stop fill for indicator bars.
type Gradient struct {
	Start string
	End   string
}

var (
	// AccentGradient is the default bar fill.
	AccentGradient = Gradient{Start: "#A78BFA", End: "#22D3EE"}

	// OversoldGradient fills the RSI bar below 30.
	OversoldGradient = Gradient{Start: "#10B981", End: "#059669"}

	// OverboughtGradient fills the RSI bar above 70.
	OverboughtGradient = Gradient{Start: "#EF4444", End: "#DC2626"}
)

// ToneColor resolves a view tone.
func ToneColor(t view.Tone) lipgloss.AdaptiveColor {
	if t == view.ToneDanger {
		return Danger
	}
	return Success
}

// GradientColors resolves a view gradient. Unknown names use the accent.
func GradientColors(g view.Gradient) Gradient {
	switch g {
	case view.GradientOversold:
		return OversoldGradient
	case view.GradientOverbought:
		return OverboughtGradient
	default:
		return AccentGradient
	}
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicators are ASCII markers shown next to colored text so states do
// not depend on color alone.
var StatusIndicators = struct {
	Success string
	Error   string
	Up      string
	Down    string
}{
	Success: "[OK]",
	Error:   "[X]",
	Up:      "^",
	Down:    "v",
}

// RenderError renders an error line with its marker.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderSuccess renders a success line with its marker.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(Success).
		Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderTone renders text in the color of tone t, prefixed by the up/down
// marker.
func RenderTone(t view.Tone, text string) string {
	marker := StatusIndicators.Up
	if t == view.ToneDanger {
		marker = StatusIndicators.Down
	}
	return lipgloss.NewStyle().Foreground(ToneColor(t)).Render(marker + " " + text)
}
