// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/stockpulse/internal/config"
	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/predict"
	"github.com/jeranaias/stockpulse/internal/view"
	"github.com/jeranaias/stockpulse/internal/watch"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"set", "--schedule", "@every 1m"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("schedule") != "@every 1m" {
					t.Errorf("Flag(schedule) = %q, want %q", p.Flag("schedule"), "@every 1m")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"AAPL", "--schedule=*/30 * * * * *"},
			wantSub: "AAPL",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("schedule") != "*/30 * * * * *" {
					t.Errorf("Flag(schedule) = %q", p.Flag("schedule"))
				}
			},
		},
		{
			name:    "declared boolean does not consume next word",
			args:    []string{"--once", "AAPL", "MSFT"},
			bools:   []string{"once"},
			wantSub: "AAPL",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("once") {
					t.Error("BoolFlag(once) should be true")
				}
				if p.PositionalCount() != 2 {
					t.Errorf("PositionalCount() = %d, want 2", p.PositionalCount())
				}
			},
		},
		{
			name:    "explicit boolean value",
			args:    []string{"--once=false"},
			bools:   []string{"once"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("once") {
					t.Error("BoolFlag(once) should be false")
				}
				if !p.HasFlag("once") {
					t.Error("HasFlag(once) should be true")
				}
			},
		},
		{
			name:    "trailing value flag",
			args:    []string{"AAPL", "--schedule"},
			wantSub: "AAPL",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.HasFlag("schedule") || p.Flag("schedule") != "" {
					t.Error("trailing flag should be present without a value")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--", "-weird"},
			wantSub: "-weird",
		},
		{
			name:    "empty args",
			args:    []string{},
			wantSub: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if got := p.Subcommand(); got != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_Positional(t *testing.T) {
	p := NewArgParser([]string{"set", "ui.chips", "AAPL,MSFT"})

	if p.Positional(1) != "ui.chips" {
		t.Errorf("Positional(1) = %q", p.Positional(1))
	}
	if p.Positional(5) != "" || p.Positional(-1) != "" {
		t.Error("out of range Positional should be empty")
	}
	if got := p.PositionalFrom(2); !reflect.DeepEqual(got, []string{"AAPL,MSFT"}) {
		t.Errorf("PositionalFrom(2) = %v", got)
	}
	if got := p.PositionalFrom(9); len(got) != 0 {
		t.Errorf("PositionalFrom(9) = %v, want empty", got)
	}
	if p.Flag("missing") != "" || p.HasFlag("missing") {
		t.Error("missing flag should be absent")
	}
	if len(p.Raw()) != 3 {
		t.Errorf("Raw() = %v", p.Raw())
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{
			name:    "no args starts the screen",
			argv:    nil,
			wantCmd: CmdTUI,
		},
		{
			name:    "predict with json",
			argv:    []string{"predict", "AAPL", "--json"},
			wantCmd: CmdPredict,
			check: func(t *testing.T, a Args) {
				if !a.JSON || !reflect.DeepEqual(a.Tickers, []string{"AAPL"}) {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			name:    "global flags before the command",
			argv:    []string{"--api", "http://10.0.0.5:5001", "--config=/tmp/c.yaml", "-v", "price", "tsla"},
			wantCmd: CmdPrice,
			check: func(t *testing.T, a Args) {
				if a.APIURL != "http://10.0.0.5:5001" || a.ConfigPath != "/tmp/c.yaml" || !a.Verbose {
					t.Errorf("globals = %+v", a)
				}
				if !reflect.DeepEqual(a.Tickers, []string{"tsla"}) {
					t.Errorf("Tickers = %v", a.Tickers)
				}
			},
		},
		{
			name:    "watch options",
			argv:    []string{"watch", "--once", "AAPL", "MSFT", "--schedule", "@every 1m"},
			wantCmd: CmdWatch,
			check: func(t *testing.T, a Args) {
				if !a.Once || a.Schedule != "@every 1m" {
					t.Errorf("watch args = %+v", a)
				}
				if !reflect.DeepEqual(a.Tickers, []string{"AAPL", "MSFT"}) {
					t.Errorf("Tickers = %v", a.Tickers)
				}
			},
		},
		{
			name:    "watch schedule without a value",
			argv:    []string{"watch", "AAPL", "--schedule"},
			wantCmd: CmdWatch,
			check: func(t *testing.T, a Args) {
				if a.EmptyFlag != "schedule" || a.Schedule != "" {
					t.Errorf("watch args = %+v", a)
				}
			},
		},
		{
			name:    "config set",
			argv:    []string{"config", "SET", "ui.chips", "AAPL,NVDA"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				if a.Subcommand != "set" || a.ConfigKey != "ui.chips" || a.ConfigVal != "AAPL,NVDA" {
					t.Errorf("config args = %+v", a)
				}
			},
		},
		{
			name:    "config set joins a spaced value",
			argv:    []string{"config", "set", "watch.schedule", "@every", "1m"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				if a.ConfigVal != "@every 1m" {
					t.Errorf("ConfigVal = %q", a.ConfigVal)
				}
			},
		},
		{"version", []string{"version"}, CmdVersion, nil},
		{"long version", []string{"--version"}, CmdVersion, nil},
		{"help", []string{"-h"}, CmdHelp, nil},
		{"tui", []string{"tui"}, CmdTUI, nil},
		{
			name:    "unknown command",
			argv:    []string{"frobnicate"},
			wantCmd: CmdUnknown,
			check: func(t *testing.T, a Args) {
				if a.Unknown != "frobnicate" {
					t.Errorf("Unknown = %q", a.Unknown)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Fatalf("command = %v, want %v", cmd, tt.wantCmd)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestHandleUnknown(t *testing.T) {
	err := HandleUnknown(Args{Unknown: "nope"})
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name the command: %v", err)
	}
}

// =============================================================================
// EXIT CODE TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"empty ticker", controller.ErrEmptyTicker, ExitUsageError},
		{"validation", ErrMissingArgument("ticker", "x"), ExitUsageError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "api.base_url", Message: "bad"}}), ExitConfigError},
		{"not found", &predict.PredictionRequestError{StatusCode: 404, Message: "Ticker not found"}, ExitNotFoundError},
		{"server error", &predict.PredictionRequestError{StatusCode: 500, Message: "boom"}, ExitAPIError},
		{"timeout", &predict.ClientError{Type: predict.ErrTypeTimeout}, ExitTimeoutError},
		{"connection", &predict.ClientError{Type: predict.ErrTypeConnection}, ExitNetworkError},
		{"canceled", &predict.ClientError{Type: predict.ErrTypeCanceled}, ExitInterrupted},
		{"bad body", &predict.ClientError{Type: predict.ErrTypeInvalidResponse}, ExitAPIError},
		{"wrapped in command error", NewCommandError("watch", "round", "1 of 1 failed", &predict.PredictionRequestError{StatusCode: 404}), ExitNotFoundError},
		{"config command", NewCommandError("config", "set", "cannot save", errors.New("disk full")), ExitConfigError},
		{"other", errors.New("something"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "predict", &predict.PredictionRequestError{StatusCode: 404, Message: "Ticker not found"}, true)

	var resp JSONResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if resp.Success || resp.Error == nil || *resp.Error != "Ticker not found" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.ErrorType != "request_error" || resp.ExitCode != ExitNotFoundError {
		t.Errorf("error_type = %q exit_code = %d", resp.ErrorType, resp.ExitCode)
	}
}

func TestDisplayError_Text(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "price", errors.New("boom"), false)
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	DisplayError(&buf, "price", nil, false)
	if buf.Len() != 0 {
		t.Error("nil error should print nothing")
	}
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

// newAPI serves both endpoints. Tickers in missing answer 404.
func newAPI(t *testing.T, missing ...string) *httptest.Server {
	t.Helper()
	notFound := map[string]bool{}
	for _, m := range missing {
		notFound[m] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		var req predict.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad body"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if notFound[req.Ticker] {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Ticker not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(predict.PredictionResponse{
			Ticker:        req.Ticker,
			CurrentPrice:  150,
			PriceChange:   2.5,
			PercentChange: 1.69,
			Prediction:    "UP",
			Confidence:    0.61,
			Precision:     0.58,
			Indicators:    predict.Indicators{SMA10: 148, SMA50: 140, RSI: 55, Volume: 1.2e6},
		})
	})
	mux.HandleFunc("/api/price/", func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/api/price/")
		w.Header().Set("Content-Type", "application/json")
		if notFound[ticker] {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Ticker not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(predict.PriceQuote{Ticker: ticker, Price: 189.5, Change: -1.25, PercentChange: -0.66})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testEnv(baseURL string) (*Env, *bytes.Buffer) {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.TimeoutSecs = 5

	var out bytes.Buffer
	return &Env{Config: cfg, Logger: zap.NewNop(), Out: &out, Err: &bytes.Buffer{}}, &out
}

func TestHandlePredict_Text(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)

	if err := HandlePredict(context.Background(), Args{Tickers: []string{" aapl "}}, env); err != nil {
		t.Fatalf("HandlePredict: %v", err)
	}
	for _, want := range []string{"AAPL", "UP", "$150.00"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHandlePredict_JSON(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)

	err := HandlePredict(context.Background(), Args{Tickers: []string{"aapl", "msft"}, JSON: true}, env)
	if err != nil {
		t.Fatalf("HandlePredict: %v", err)
	}

	var resp struct {
		Success bool          `json:"success"`
		Command string        `json:"command"`
		Data    []PredictData `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if !resp.Success || resp.Command != "predict" || len(resp.Data) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Data[1].Ticker != "MSFT" || resp.Data[1].Prediction != "UP" {
		t.Errorf("data[1] = %+v", resp.Data[1])
	}
}

func TestHandlePredict_NotFound(t *testing.T) {
	srv := newAPI(t, "ZZZZ")
	env, out := testEnv(srv.URL)

	err := HandlePredict(context.Background(), Args{Tickers: []string{"zzzz"}, JSON: true}, env)
	if err == nil || err.Error() != "Ticker not found" {
		t.Fatalf("err = %v, want Ticker not found", err)
	}
	if GetExitCode(err) != ExitNotFoundError {
		t.Errorf("exit code = %d", GetExitCode(err))
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed before main reports the error, got %q", out.String())
	}
}

func TestHandlePredict_Validation(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")

	err := HandlePredict(context.Background(), Args{}, env)
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("missing ticker: exit code = %d, want usage", GetExitCode(err))
	}

	err = HandlePredict(context.Background(), Args{Tickers: []string{"   "}}, env)
	if !errors.Is(err, controller.ErrEmptyTicker) {
		t.Errorf("blank ticker: err = %v, want ErrEmptyTicker", err)
	}
}

func TestHandlePrice(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)

	if err := HandlePrice(context.Background(), Args{Tickers: []string{"aapl"}}, env); err != nil {
		t.Fatalf("HandlePrice: %v", err)
	}
	want := "AAPL Price: $189.50 (-1.25 / -0.66%)"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestHandlePrice_JSON(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)

	if err := HandlePrice(context.Background(), Args{Tickers: []string{"tsla"}, JSON: true}, env); err != nil {
		t.Fatalf("HandlePrice: %v", err)
	}
	var resp struct {
		Data []PriceData `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Ticker != "TSLA" || resp.Data[0].Price != 189.5 {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestHandlePrice_Errors(t *testing.T) {
	srv := newAPI(t, "NOPE")
	env, _ := testEnv(srv.URL)

	err := HandlePrice(context.Background(), Args{Tickers: []string{"nope"}}, env)
	if err == nil || err.Error() != "Ticker not found" {
		t.Errorf("err = %v", err)
	}
	if err := HandlePrice(context.Background(), Args{Tickers: []string{" "}}, env); !errors.Is(err, controller.ErrEmptyTicker) {
		t.Errorf("blank ticker: err = %v", err)
	}
}

func TestHandleWatch_Once(t *testing.T) {
	srv := newAPI(t, "MSFT")
	env, out := testEnv(srv.URL)

	err := HandleWatch(context.Background(), Args{Tickers: []string{"AAPL", "MSFT"}, Once: true}, env)
	if err == nil {
		t.Fatal("a failing ticker should fail a single round")
	}
	if GetExitCode(err) != ExitNotFoundError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitNotFoundError)
	}
	if !strings.Contains(err.Error(), "1 of 2 tickers failed (MSFT)") {
		t.Errorf("err = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "[X] Ticker not found") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestHandleWatch_DefaultsFromConfig(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)
	env.Config.Watch.Tickers = []string{"NVDA"}

	if err := HandleWatch(context.Background(), Args{Once: true, JSON: true}, env); err != nil {
		t.Fatalf("HandleWatch: %v", err)
	}
	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(out.Bytes()), &line); err != nil {
		t.Fatalf("line is not JSON: %v\n%s", err, out.String())
	}
	if line["ticker"] != "NVDA" {
		t.Errorf("ticker = %v", line["ticker"])
	}
}

func TestHandleWatch_Schedule(t *testing.T) {
	srv := newAPI(t)
	env, out := testEnv(srv.URL)

	err := HandleWatch(context.Background(), Args{Tickers: []string{"AAPL"}, Schedule: "*/5 * * * *"}, env)
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("five-field schedule: err = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = HandleWatch(ctx, Args{Tickers: []string{"AAPL"}, Schedule: "@every 1h"}, env)
	if err != nil {
		t.Fatalf("HandleWatch: %v", err)
	}
	if !strings.Contains(out.String(), "AAPL") {
		t.Errorf("the first round should run right away:\n%s", out.String())
	}
}

func TestHandleWatch_NoTickers(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")
	env.Config.Watch.Tickers = nil

	err := HandleWatch(context.Background(), Args{Once: true}, env)
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("err = %v, want usage error", err)
	}
}

func TestHandleWatch_EmptyScheduleFlag(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")

	_, args := ParseArgs([]string{"watch", "AAPL", "--schedule"})
	err := HandleWatch(context.Background(), args, env)
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("err = %v, want usage error", err)
	}
}

func TestRoundError(t *testing.T) {
	notFound := &predict.PredictionRequestError{StatusCode: 404, Message: "Ticker not found"}
	canceled := &predict.ClientError{Type: predict.ErrTypeCanceled, Cause: context.Canceled}

	if err := roundError([]watch.Result{{Ticker: "AAPL"}}); err != nil {
		t.Errorf("clean round error = %v, want nil", err)
	}

	err := roundError([]watch.Result{{Ticker: "AAPL"}, {Ticker: "ZZZZ", Err: notFound}})
	if err == nil || !strings.Contains(err.Error(), "1 of 2 tickers failed (ZZZZ)") {
		t.Errorf("failed round error = %v", err)
	}

	err = roundError([]watch.Result{
		{Ticker: "ZZZZ", Err: notFound},
		{Ticker: "MSFT", Err: canceled, Interrupted: true},
	})
	if GetExitCode(err) != ExitInterrupted {
		t.Errorf("interrupted round exit code = %d, want %d", GetExitCode(err), ExitInterrupted)
	}
}

func TestColoredLine(t *testing.T) {
	ts := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)
	ok := ColoredLine(watch.Result{Time: ts, Ticker: "AAPL", Prediction: "UP", Confidence: "61.00%", Price: "$150.00", Tone: view.ToneSuccess})
	for _, want := range []string{"09:30:00", "AAPL", "UP", "61.00%", "$150.00"} {
		if !strings.Contains(ok, want) {
			t.Errorf("line %q missing %q", ok, want)
		}
	}

	failed := ColoredLine(watch.Result{Time: ts, Ticker: "ZZZZ", Err: errors.New("x"), Error: "Ticker not found"})
	if !strings.Contains(failed, "[X] Ticker not found") {
		t.Errorf("line = %q", failed)
	}
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STOCKPULSE_HOME", dir)
	return dir
}

func TestHandleConfig_SetAndGet(t *testing.T) {
	dir := isolate(t)
	env, out := testEnv("http://127.0.0.1:5001")

	err := HandleConfig(Args{Subcommand: "set", ConfigKey: "ui.chips", ConfigVal: "nvda, amd"}, env)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(out.String(), "ui.chips = NVDA,AMD") {
		t.Errorf("output = %q", out.String())
	}

	saved, err := config.LoadFromPath(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(saved.UI.Chips, []string{"NVDA", "AMD"}) {
		t.Errorf("saved chips = %v", saved.UI.Chips)
	}

	out.Reset()
	env.Config = saved
	if err := HandleConfig(Args{Subcommand: "get", ConfigKey: "ui.chips"}, env); err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out.String()) != "NVDA,AMD" {
		t.Errorf("get output = %q", out.String())
	}
}

func TestHandleConfig_SetDoesNotPersistEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("STOCKPULSE_API_URL", "http://from-env:1")
	env, _ := testEnv("http://from-env:1")

	if err := HandleConfig(Args{Subcommand: "set", ConfigKey: "api.timeout_secs", ConfigVal: "12"}, env); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "from-env") {
		t.Errorf("environment override leaked into the file:\n%s", data)
	}
	if !strings.Contains(string(data), "timeout_secs = 12") {
		t.Errorf("file should hold the new timeout:\n%s", data)
	}
}

func TestHandleConfig_Errors(t *testing.T) {
	isolate(t)
	env, _ := testEnv("http://127.0.0.1:5001")

	tests := []struct {
		name string
		args Args
		want int
	}{
		{"invalid value", Args{Subcommand: "set", ConfigKey: "api.timeout_secs", ConfigVal: "9999"}, ExitConfigError},
		{"unknown key", Args{Subcommand: "set", ConfigKey: "api.nope", ConfigVal: "1"}, ExitUsageError},
		{"missing value", Args{Subcommand: "set", ConfigKey: "api.base_url"}, ExitUsageError},
		{"get unknown", Args{Subcommand: "get", ConfigKey: "nope"}, ExitUsageError},
		{"bad subcommand", Args{Subcommand: "frob"}, ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleConfig(tt.args, env)
			if got := GetExitCode(err); got != tt.want {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestHandleConfig_ShowPathKeysReset(t *testing.T) {
	dir := isolate(t)
	env, out := testEnv("http://127.0.0.1:5001")

	if err := HandleConfig(Args{}, env); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"api.base_url", "http://127.0.0.1:5001", "watch.schedule"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q", want)
		}
	}

	out.Reset()
	if err := HandleConfig(Args{Subcommand: "path"}, env); err != nil {
		t.Fatalf("path: %v", err)
	}
	if strings.TrimSpace(out.String()) != filepath.Join(dir, "config.toml") {
		t.Errorf("path = %q", out.String())
	}

	out.Reset()
	if err := HandleConfig(Args{Subcommand: "keys", JSON: true}, env); err != nil {
		t.Fatalf("keys: %v", err)
	}
	var resp struct {
		Data ConfigData `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("keys output is not JSON: %v", err)
	}
	if len(resp.Data.Keys) != len(config.GetAllKeys()) {
		t.Errorf("keys = %v", resp.Data.Keys)
	}

	if err := HandleConfig(Args{Subcommand: "reset"}, env); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("reset should write the file: %v", err)
	}
}

// =============================================================================
// SETUP TESTS (helpers.go)
// =============================================================================

func TestLoadConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("STOCKPULSE_API_URL", "")

	cfg, path, err := LoadConfig(Args{APIURL: "http://10.0.0.5:5001/", Verbose: true})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want defaults", path)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:5001" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}

	if _, _, err := LoadConfig(Args{APIURL: "ftp://nope"}); GetExitCode(err) != ExitConfigError {
		t.Errorf("bad --api: err = %v", err)
	}

	file := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(file, []byte("api:\n  timeout_secs: 9\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, path, err = LoadConfig(Args{ConfigPath: file})
	if err != nil {
		t.Fatalf("LoadConfig(--config): %v", err)
	}
	if path != file || cfg.API.TimeoutSecs != 9 {
		t.Errorf("path = %q timeout = %d", path, cfg.API.TimeoutSecs)
	}
}

func TestFallbackLogger(t *testing.T) {
	if FallbackLogger(CmdTUI).Core().Enabled(zapcore.ErrorLevel) {
		t.Error("the screen must not log to the terminal")
	}
	logger := FallbackLogger(CmdPredict)
	if !logger.Core().Enabled(zapcore.WarnLevel) || logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("one-shot commands should log warnings only")
	}
}

func TestReloadedConfig(t *testing.T) {
	base := config.Default()
	base.API.BaseURL = "http://from-flag:5001"
	next := config.Default()
	next.API.BaseURL = "http://from-file:5001"
	next.UI.Chips = []string{"NVDA", "AMD"}

	live := ReloadedConfig(base, next)
	if live.API.BaseURL != "http://from-flag:5001" {
		t.Errorf("BaseURL = %q, want the flag value kept", live.API.BaseURL)
	}
	if !reflect.DeepEqual(live.UI.Chips, []string{"NVDA", "AMD"}) {
		t.Errorf("Chips = %v, want reloaded chips", live.UI.Chips)
	}

	live.UI.Chips[0] = "ZZZ"
	if next.UI.Chips[0] != "NVDA" || base.UI.Chips[0] == "ZZZ" {
		t.Error("reloaded config must not share slices")
	}
}

func TestNewPredictClient(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "http://example.test:9000"
	if got := NewPredictClient(cfg, nil).BaseURL(); got != "http://example.test:9000" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestHandleVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := HandleVersion(Args{JSON: true}, &buf); err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Data VersionData `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if resp.Data.Version != Version || resp.Data.GoVersion == "" {
		t.Errorf("data = %+v", resp.Data)
	}

	buf.Reset()
	if err := HandleVersion(Args{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "stockpulse version "+Version) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDetectColors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"tty", nil, true, true},
		{"pipe", nil, false, false},
		{"no color wins", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
		{"force color", map[string]string{"FORCE_COLOR": "1"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			if got := detectColors(getenv, func() bool { return tt.isTTY }); got != tt.want {
				t.Errorf("detectColors = %v, want %v", got, tt.want)
			}
		})
	}
}
