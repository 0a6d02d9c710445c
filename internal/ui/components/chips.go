// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
)

// =============================================================================
// CHIP BAR COMPONENT
// =============================================================================

// ChipBar is the row of quick-select tickers. At most nine chips get a
// number hint; the rest are reachable with tab.
type ChipBar struct {
	chips   []string
	focused int // -1 when the input has focus
	theme   *styles.Theme
}

// NewChipBar creates a chip bar with nothing focused.
func NewChipBar(theme *styles.Theme, chips []string) *ChipBar {
	return &ChipBar{chips: append([]string(nil), chips...), focused: -1, theme: theme}
}

// SetChips replaces the chips and drops focus.
func (c *ChipBar) SetChips(chips []string) {
	c.chips = append([]string(nil), chips...)
	c.focused = -1
}

// Chips returns the configured tickers.
func (c *ChipBar) Chips() []string {
	return c.chips
}

// At returns the ticker of the 1-based chip n.
func (c *ChipBar) At(n int) (string, bool) {
	if n < 1 || n > len(c.chips) {
		return "", false
	}
	return c.chips[n-1], true
}

// Focused returns the focused chip's ticker.
func (c *ChipBar) Focused() (string, bool) {
	if c.focused < 0 || c.focused >= len(c.chips) {
		return "", false
	}
	return c.chips[c.focused], true
}

// HasFocus reports whether a chip is focused.
func (c *ChipBar) HasFocus() bool {
	return c.focused >= 0
}

// Next moves focus right. Moving past the last chip returns focus to the
// input and reports false.
func (c *ChipBar) Next() bool {
	if len(c.chips) == 0 {
		return false
	}
	c.focused++
	if c.focused >= len(c.chips) {
		c.focused = -1
		return false
	}
	return true
}

// Prev moves focus left; from the input it wraps to the last chip.
func (c *ChipBar) Prev() bool {
	if len(c.chips) == 0 {
		return false
	}
	if c.focused < 0 {
		c.focused = len(c.chips) - 1
		return true
	}
	c.focused--
	return c.focused >= 0
}

// Blur drops chip focus.
func (c *ChipBar) Blur() {
	c.focused = -1
}

// View renders the chips on one line.
func (c *ChipBar) View() string {
	if len(c.chips) == 0 {
		return ""
	}

	parts := make([]string, 0, len(c.chips)+1)
	parts = append(parts, c.theme.StatLabel.Render("Popular:"))
	for i, ticker := range c.chips {
		label := ticker
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + ticker
		}
		style := c.theme.Chip
		if i == c.focused {
			style = c.theme.ChipFocused
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

// Plain renders the chips as unstyled "1:AAPL 2:MSFT" for narrow layouts.
// The focused chip is wrapped in brackets.
func (c *ChipBar) Plain() string {
	if len(c.chips) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.chips))
	for i, ticker := range c.chips {
		label := ticker
		if i < 9 {
			label = strconv.Itoa(i+1) + ":" + ticker
		}
		if i == c.focused {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
