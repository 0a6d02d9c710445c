// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar shows the form state, the last request time and key hints.
type StatusBar struct {
	State       view.State
	LastLatency time.Duration
	Shortcuts   []Shortcut
	Width       int
	theme       *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// View renders the bar; shortcuts are dropped first when space runs out.
func (s *StatusBar) View() string {
	left := s.renderState()
	if s.LastLatency > 0 {
		left += s.theme.ShortcutDesc.Render("  last " + s.LastLatency.Round(time.Millisecond).String())
	}

	right := s.renderShortcuts()
	gap := s.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = 1
	}

	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) renderState() string {
	label := strings.ToUpper(s.State.String())
	style := lipgloss.NewStyle().Bold(true)
	switch s.State {
	case view.StateLoading:
		style = style.Foreground(styles.Amber)
	case view.StateError:
		style = style.Foreground(styles.Danger)
	case view.StateResults:
		style = style.Foreground(styles.Success)
	default:
		style = style.Foreground(styles.TextMuted)
	}
	return style.Render("[" + label + "]")
}

func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}
