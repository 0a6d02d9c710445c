// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package predict provides the HTTP client for the stock prediction API.
//
// The API exposes two endpoints:
//
//   - POST /api/predict with {"ticker": "AAPL"} returns a PredictionResponse
//   - GET /api/price/<ticker> returns a PriceQuote
//
// Failure bodies have the shape {"error": "..."}; the field is optional.
// Response bodies are parsed as JSON before the status code is looked at, so
// a malformed body surfaces as a parse error even on a failing status.
//
// # Usage
//
//	client := predict.NewClientWithConfig(&predict.ClientConfig{
//	    BaseURL: "http://127.0.0.1:5001",
//	})
//	resp, err := client.Predict(ctx, "AAPL")
//	var reqErr *predict.PredictionRequestError
//	if errors.As(err, &reqErr) {
//	    fmt.Println(reqErr.StatusCode, reqErr.Message)
//	}
package predict
