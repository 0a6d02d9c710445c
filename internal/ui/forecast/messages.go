// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forecast

import "github.com/jeranaias/stockpulse/internal/controller"

// PredictionMsg carries a finished request back to the update loop.
type PredictionMsg struct {
	Outcome controller.Outcome
}

// ChipsChangedMsg replaces the quick-select chips, sent when the config file
// changes while the screen is open.
type ChipsChangedMsg struct {
	Chips []string
}
