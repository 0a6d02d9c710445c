// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output shared by all stockpulse commands.
package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/stockpulse/internal/view"
)

// JSONResponse is the envelope every command prints in --json mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// ErrorType and ExitCode describe a failure for scripts.
	ErrorType string `json:"error_type,omitempty"`
	ExitCode  int    `json:"exit_code,omitempty"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND DATA STRUCTURES
// =============================================================================

// PredictData is the JSON form of one rendered prediction.
type PredictData struct {
	Ticker     string `json:"ticker"`
	Prediction string `json:"prediction"`
	Confidence string `json:"confidence"`
	Precision  string `json:"precision"`
	Price      string `json:"price"`
	Change     string `json:"change"`
	SMA10      string `json:"sma10"`
	SMA50      string `json:"sma50"`
	RSI        string `json:"rsi"`
	Volume     string `json:"volume"`
}

// NewPredictData copies the display strings out of r.
func NewPredictData(r *view.Results) PredictData {
	return PredictData{
		Ticker:     r.Ticker,
		Prediction: r.BadgeText,
		Confidence: r.Confidence,
		Precision:  r.Precision,
		Price:      r.PriceLine,
		Change:     r.Change,
		SMA10:      r.SMA10,
		SMA50:      r.SMA50,
		RSI:        r.RSI,
		Volume:     r.Volume,
	}
}

// PriceData is the JSON form of a quote.
type PriceData struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Display       string  `json:"display"`
}

// ConfigData is the output of "config show" and "config path".
type ConfigData struct {
	Path   string      `json:"path,omitempty"`
	Key    string      `json:"key,omitempty"`
	Value  interface{} `json:"value,omitempty"`
	Keys   []string    `json:"keys,omitempty"`
	Config interface{} `json:"config,omitempty"`
}

// VersionData contains version information.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
