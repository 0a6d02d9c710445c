// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the stockpulse screen.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

Semantic tokens used by the results card:

	Success - non-negative price change
	Danger  - negative price change

The view model names tones and gradients; ToneColor and GradientColors
resolve them:

	GradientNeutral    - accent gradient (purple to cyan)
	GradientOversold   - RSI below 30 (#10b981 to #059669)
	GradientOverbought - RSI above 70 (#ef4444 to #dc2626)

# Theme (theme.go)

Theme holds every Lip Gloss style of the screen and detects the terminal's
color profile with termenv. Layout modes follow the terminal width:

	LayoutNarrow - < 60 columns
	LayoutMedium - 60-100 columns
	LayoutWide   - > 100 columns

# Animations (animations.go)

Spinner frame sets for the loading region, converted to bubbles spinners by
SpinnerConfig.Bubble.
*/
package styles
