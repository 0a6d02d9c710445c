// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forecast is the interactive prediction screen.
//
// The screen owns the terminal widgets and forwards user actions to a
// controller.Controller; everything it draws in the body comes from the
// controller's view.Form. Requests run as tea.Cmds and come back as
// PredictionMsg, which the controller applies only if it is still current.
package forecast

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/ui/components"
	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

// Options configures the screen.
type Options struct {
	Chips  []string
	APIURL string
	Logger *zap.Logger

	// Spinner names the loading animation; empty means "ticker".
	Spinner   string
	HideTimer bool
}

// Model is the Bubble Tea model of the prediction screen.
type Model struct {
	ctrl   *controller.Controller
	theme  *styles.Theme
	keys   KeyMap
	logger *zap.Logger

	header  *components.Header
	input   *components.TickerInput
	chips   *components.ChipBar
	spinner components.Spinner
	errBox  *components.ErrorBox
	card    *components.ResultsCard
	status  *components.StatusBar

	viewport viewport.Model

	width  int
	height int
}

// New creates the screen around ctrl.
func New(ctrl *controller.Controller, opts Options) Model {
	theme := styles.NewTheme()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	header := components.NewHeader(theme)
	header.APIURL = opts.APIURL

	keys := DefaultKeyMap()
	status := components.NewStatusBar(theme)
	status.Shortcuts = keys.Shortcuts()

	m := Model{
		ctrl:     ctrl,
		theme:    theme,
		keys:     keys,
		logger:   logger.With(zap.String("caller", "forecast")),
		header:   header,
		input:    components.NewTickerInput(theme),
		chips:    components.NewChipBar(theme, opts.Chips),
		spinner:  components.NewSpinner(theme),
		errBox:   components.NewErrorBox(theme),
		card:     components.NewResultsCard(theme),
		status:   status,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
	m.spinner.SetConfig(styles.SpinnerByName(opts.Spinner))
	m.spinner.SetShowTimer(!opts.HideTimer)
	m.input.SetValue(ctrl.Form().InputValue)
	m.layout()
	return m
}

// Init focuses the ticker input.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PredictionMsg:
		return m.handlePrediction(msg)

	case ChipsChangedMsg:
		m.chips.SetChips(msg.Chips)
		m.logger.Info("chips updated", zap.Strings("chips", msg.Chips))
		m.layout()
		return m, m.input.Focus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.ctrl.Pending() {
			m.logger.Info("quitting with a request in flight")
		}
		m.ctrl.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Chip):
		if ticker, ok := m.chips.At(chipNumber(msg)); ok {
			return m, m.selectChip(ticker)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if ticker, ok := m.chips.Focused(); ok {
			return m, m.selectChip(ticker)
		}
		return m, m.submit(m.ctrl.Submit(m.input.Value()))

	case key.Matches(msg, m.keys.NextChip):
		m.chips.Next()
		return m, m.syncFocus()

	case key.Matches(msg, m.keys.PrevChip):
		m.chips.Prev()
		return m, m.syncFocus()

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.Form().DismissError()
		m.chips.Blur()
		m.refresh()
		return m, m.syncFocus()

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		return m, m.input.Update(msg)
	}
	return m, nil
}

// selectChip fills the input with ticker and submits it.
func (m *Model) selectChip(ticker string) tea.Cmd {
	m.input.SetValue(ticker)
	m.chips.Blur()
	focus := m.syncFocus()
	return tea.Batch(focus, m.submit(m.ctrl.SelectChip(ticker)))
}

// submit starts the spinner and the request for a. A nil activation means
// validation failed and the form already shows the error.
func (m *Model) submit(a *controller.Activation) tea.Cmd {
	if a == nil {
		m.spinner.Stop()
		m.refresh()
		return nil
	}

	m.spinner.SetMessage("Analyzing " + a.Ticker)
	var tick tea.Cmd
	if !m.spinner.IsActive() {
		tick = m.spinner.Start()
	}
	m.refresh()

	ctrl := m.ctrl
	fetch := func() tea.Msg {
		return PredictionMsg{Outcome: ctrl.Fetch(a)}
	}
	return tea.Batch(tick, fetch)
}

func (m Model) handlePrediction(msg PredictionMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Resolve(msg.Outcome) {
		return m, nil
	}

	m.spinner.Stop()
	m.status.LastLatency = msg.Outcome.Duration
	m.refresh()

	if s, ok := m.ctrl.Form().TakeScroll(); ok {
		m.scrollIntoView(s)
	}
	return m, nil
}

// syncFocus gives the input focus unless a chip has it.
func (m Model) syncFocus() tea.Cmd {
	if m.chips.HasFocus() {
		m.input.Blur()
		return nil
	}
	return m.input.Focus()
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes every component for the current window.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)

	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.header.SetWidth(contentWidth)
	m.input.SetWidth(contentWidth)
	m.errBox.Width = contentWidth
	m.card.Width = contentWidth
	m.status.Width = m.width

	vpHeight := m.height - lipgloss.Height(m.chromeTop()) - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight
	m.refresh()
}

// refresh redraws the body from the form.
func (m *Model) refresh() {
	m.status.State = m.ctrl.Form().State
	m.viewport.SetContent(m.body())
}

// scrollIntoView brings the results region into view. The region is the
// whole body, so the nearest position that shows its top edge is the top.
func (m *Model) scrollIntoView(s view.ScrollIntoView) {
	m.viewport.GotoTop()
	m.logger.Debug("scrolled results into view",
		zap.String("behavior", s.Behavior),
		zap.String("block", s.Block),
	)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the screen.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.chromeTop(),
		m.viewport.View(),
		m.status.View(),
	)
}

func (m Model) chromeTop() string {
	header := m.header.View()
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		header = m.header.ViewCompact()
	}
	parts := []string{header, m.input.View(m.ctrl.Form().SubmitEnabled)}
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		if chips := m.chips.Plain(); chips != "" {
			parts = append(parts, m.theme.ShortcutDesc.Render(chips))
		}
	} else if chips := m.chips.View(); chips != "" {
		parts = append(parts, chips)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// body renders the one visible region.
func (m Model) body() string {
	form := m.ctrl.Form()
	switch {
	case form.Visible(view.RegionLoading):
		return m.spinner.View()
	case form.Visible(view.RegionError):
		m.errBox.Message = form.ErrorMessage
		return m.errBox.View()
	case form.Visible(view.RegionResults):
		return m.card.View(form.Results)
	}
	return m.theme.ShortcutDesc.Render("Type a ticker and press enter, or pick a chip.")
}
