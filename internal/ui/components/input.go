// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/stockpulse/internal/ui/styles"
)

// =============================================================================
// TICKER INPUT COMPONENT
// =============================================================================

// TickerCharLimit bounds the input; real symbols are far shorter.
const TickerCharLimit = 16

// TickerInput is the ticker text field with its submit button.
type TickerInput struct {
	input textinput.Model
	width int
	theme *styles.Theme
}

// NewTickerInput creates a new, unfocused ticker input.
func NewTickerInput(theme *styles.Theme) *TickerInput {
	ti := textinput.New()
	ti.Placeholder = "Enter ticker (e.g. AAPL)"
	ti.CharLimit = TickerCharLimit
	ti.Width = 24
	ti.Prompt = "$ "

	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	return &TickerInput{input: ti, width: 40, theme: theme}
}

// Focus focuses the input.
func (i *TickerInput) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur removes focus from the input.
func (i *TickerInput) Blur() {
	i.input.Blur()
}

// Focused returns whether the input is focused.
func (i *TickerInput) Focused() bool {
	return i.input.Focused()
}

// Value returns the current text.
func (i *TickerInput) Value() string {
	return i.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (i *TickerInput) SetValue(v string) {
	i.input.SetValue(v)
	i.input.CursorEnd()
}

// SetWidth sets the total width including the submit button.
func (i *TickerInput) SetWidth(width int) {
	i.width = width
	inputWidth := width - 20
	if inputWidth < 10 {
		inputWidth = 10
	}
	if inputWidth > 40 {
		inputWidth = 40
	}
	i.input.Width = inputWidth
}

// Update forwards key messages to the text input.
func (i *TickerInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// View renders the field and the submit button. A disabled button reads
// "Analyzing".
func (i *TickerInput) View(submitEnabled bool) string {
	field := i.theme.InputContainer.Render(i.input.View())

	var button string
	if submitEnabled {
		button = i.theme.SubmitEnabled.Render("Predict")
	} else {
		button = i.theme.SubmitDisabled.Render("Analyzing")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", button)
}
