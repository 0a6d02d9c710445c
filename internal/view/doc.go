// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view holds the prediction form's view model.
//
// A Form owns the three mutually exclusive display regions (loading, error,
// results) and the input/submit pair. Render turns a prediction response into
// the named output elements of the results card without touching any screen,
// so the same model drives the interactive screen and the one-shot command.
//
// Usage:
//
//	form := view.NewForm()
//	form.ShowLoading()
//	form.ShowResults(view.Render(resp, rand.New(rand.NewSource(1))))
//	fmt.Println(form.Results.PriceLine)
package view
