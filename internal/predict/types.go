// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"fmt"
	"strings"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// PredictRequest is the body of POST /api/predict.
type PredictRequest struct {
	Ticker string `json:"ticker"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PredictionResponse is the success body of POST /api/predict.
type PredictionResponse struct {
	Ticker        string     `json:"ticker"`
	CurrentPrice  float64    `json:"currentPrice"`
	PriceChange   float64    `json:"priceChange"`
	PercentChange float64    `json:"percentChange"`
	Prediction    string     `json:"prediction"`
	Confidence    float64    `json:"confidence"`
	Precision     float64    `json:"precision"`
	Indicators    Indicators `json:"indicators"`
}

// Indicators holds the technical indicators computed for the latest session.
type Indicators struct {
	SMA10  float64 `json:"sma10"`
	SMA50  float64 `json:"sma50"`
	RSI    float64 `json:"rsi"`
	Volume float64 `json:"volume"`
}

// Keys a prediction body must carry. The results card renders every one, so
// a body missing any of them (or holding null) is rejected rather than
// rendered as zeros.
var (
	predictionFields = []string{
		"ticker", "currentPrice", "priceChange", "percentChange",
		"prediction", "confidence", "precision", "indicators",
	}
	indicatorFields = []string{"sma10", "sma50", "rsi", "volume"}
)

// checkPredictionFields reports the required keys absent from a parsed
// prediction body.
func checkPredictionFields(parsed any) error {
	obj, _ := parsed.(map[string]any)
	var missing []string
	for _, key := range predictionFields {
		if obj[key] == nil {
			missing = append(missing, key)
		}
	}
	if ind, ok := obj["indicators"].(map[string]any); ok {
		for _, key := range indicatorFields {
			if ind[key] == nil {
				missing = append(missing, "indicators."+key)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid prediction response: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// PriceQuote is the success body of GET /api/price/<ticker>.
type PriceQuote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
}

// ErrorBody is the failure body shared by both endpoints.
type ErrorBody struct {
	Error string `json:"error,omitempty"`
}
