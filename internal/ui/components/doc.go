// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components of the stockpulse screen.

# Form

  - TickerInput - text input with the submit button (input.go)
  - ChipBar - quick-select ticker shortcuts (chips.go)

# Regions

Exactly one of these is drawn at a time, following view.Form:

  - Spinner - loading region (spinner.go)
  - ErrorBox - error region (error.go)
  - ResultsCard - results region (results.go)

ResultsCard draws its indicator bars with IndicatorBar (indicator.go), a
bubbles progress bar filled with the gradient named by the view model, and
the volume column with VolumeColumn.

# Chrome

  - Header - title bar (header.go)
  - StatusBar - key hints and request state (statusbar.go)
*/
package components
