// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/util"
)

// maxErrorRunes caps the message shown in the box. Transport errors can
// carry a full URL and a wrapped cause chain.
const maxErrorRunes = 240

// =============================================================================
// ERROR BOX
// =============================================================================

// ErrorBox draws the error region. The message is shown verbatim unless it
// is longer than maxErrorRunes.
type ErrorBox struct {
	Message string
	Width   int
	theme   *styles.Theme
}

// NewErrorBox creates an empty error box.
func NewErrorBox(theme *styles.Theme) *ErrorBox {
	return &ErrorBox{Width: 60, theme: theme}
}

// View renders the box, or nothing without a message.
func (e *ErrorBox) View() string {
	if e.Message == "" {
		return ""
	}

	width := e.Width
	if width < 30 {
		width = 30
	}
	inner := width - 6

	title := e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " Error")
	msg := e.theme.ErrorMessage.Width(inner).Render(util.TruncateRunes(e.Message, maxErrorRunes))
	tip := e.theme.ErrorTip.Render("esc to dismiss, enter to retry")

	content := lipgloss.JoinVertical(lipgloss.Left, title, msg, "", tip)
	return e.theme.ErrorBox.Width(width - 2).Render(content)
}
