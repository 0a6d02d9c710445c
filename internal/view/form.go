// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

// =============================================================================
// STATE
// =============================================================================

// State is the form's display state. Exactly one region is visible per
// state, none while idle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateResults
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Region identifies one of the display regions.
type Region int

const (
	RegionLoading Region = iota
	RegionError
	RegionResults
)

// ScrollIntoView asks the screen to bring the results region into view.
type ScrollIntoView struct {
	Behavior string // "smooth"
	Block    string // "nearest"
}

// =============================================================================
// FORM
// =============================================================================

// Form is the view model of the prediction form.
type Form struct {
	// InputValue is the ticker input's current text.
	InputValue string

	// SubmitEnabled is false only while a request is loading.
	SubmitEnabled bool

	State        State
	ErrorMessage string

	// Results is set while State is StateResults.
	Results *Results

	scroll *ScrollIntoView
}

// NewForm returns an idle form with the submit control enabled.
func NewForm() *Form {
	return &Form{SubmitEnabled: true}
}

// Visible reports whether region r is shown.
func (f *Form) Visible(r Region) bool {
	switch r {
	case RegionLoading:
		return f.State == StateLoading
	case RegionError:
		return f.State == StateError
	case RegionResults:
		return f.State == StateResults
	}
	return false
}

// ShowLoading shows the loading region and disables submit.
func (f *Form) ShowLoading() {
	f.State = StateLoading
	f.ErrorMessage = ""
	f.Results = nil
	f.SubmitEnabled = false
}

// ShowError shows message in the error region and re-enables submit.
func (f *Form) ShowError(message string) {
	f.State = StateError
	f.ErrorMessage = message
	f.Results = nil
	f.SubmitEnabled = true
}

// ShowResults shows the results card, re-enables submit and requests that
// the card be scrolled into view.
func (f *Form) ShowResults(r Results) {
	f.State = StateResults
	f.ErrorMessage = ""
	f.Results = &r
	f.SubmitEnabled = true
	f.scroll = &ScrollIntoView{Behavior: "smooth", Block: "nearest"}
}

// DismissError returns an error form to idle. Other states are unchanged.
func (f *Form) DismissError() {
	if f.State != StateError {
		return
	}
	f.State = StateIdle
	f.ErrorMessage = ""
}

// TakeScroll returns the pending scroll request, if any, and clears it.
func (f *Form) TakeScroll() (ScrollIntoView, bool) {
	if f.scroll == nil {
		return ScrollIntoView{}, false
	}
	s := *f.scroll
	f.scroll = nil
	return s, true
}
