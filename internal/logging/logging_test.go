// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_WriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("prediction received", zap.String("ticker", "AAPL"))
	cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug filtered):\n%s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"level":   "INFO",
		"message": "prediction received",
		"ticker":  "AAPL",
	} {
		if entry[key] != want {
			t.Errorf("entry[%q] = %v, want %q", key, entry[key], want)
		}
	}
	for _, key := range []string{"timestamp", "caller"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("entry missing %q: %v", key, entry)
		}
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stockpulse.log")
	logger, cleanup, err := New(Options{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("written")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), `"message":"written"`) {
		t.Errorf("log file = %s", data)
	}
}

func TestNew_NoSinkIsNop(t *testing.T) {
	logger, cleanup, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cleanup()
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without a sink should be a no-op")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}}); err == nil {
		t.Error("New() should reject an unknown level")
	}
}

func TestConsole(t *testing.T) {
	logger, err := Console("warn")
	if err != nil {
		t.Fatalf("Console() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn console logger should drop info")
	}
}
