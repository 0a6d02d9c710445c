// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs predictions for a watchlist on a cron schedule and
// prints one line per ticker.
//
// A failing ticker prints its error and the rest of the round carries on;
// a failing round never stops the schedule.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/predict"
	"github.com/jeranaias/stockpulse/internal/util"
	"github.com/jeranaias/stockpulse/internal/view"
)

// =============================================================================
// RESULTS
// =============================================================================

// Result is the outcome of one ticker in a round.
type Result struct {
	Time       time.Time     `json:"time"`
	Ticker     string        `json:"ticker"`
	Prediction string        `json:"prediction,omitempty"`
	Confidence string        `json:"confidence,omitempty"`
	Price      string        `json:"price,omitempty"`
	Change     string        `json:"change,omitempty"`
	Tone       view.Tone     `json:"-"`
	Duration   time.Duration `json:"duration_ms"`
	Err        error         `json:"-"`
	Error      string        `json:"error,omitempty"`

	// Interrupted is set when the round was canceled while this ticker's
	// request was in flight. Such results are returned but not printed.
	Interrupted bool `json:"interrupted,omitempty"`
}

// OK reports whether the ticker was predicted.
func (r Result) OK() bool { return r.Err == nil }

// MarshalJSON writes the duration in milliseconds.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	a := alias(r)
	a.Duration = r.Duration / time.Millisecond
	return json.Marshal(a)
}

// FormatLine renders r as a single plain text line.
func FormatLine(r Result) string {
	ts := r.Time.Format("15:04:05")
	if r.Err != nil {
		return fmt.Sprintf("%s  %-6s  [X] %s", ts, r.Ticker, r.Error)
	}
	return fmt.Sprintf("%s  %-6s  %-4s  conf %-6s  %s", ts, r.Ticker, r.Prediction, r.Confidence, r.Price)
}

// =============================================================================
// JOB
// =============================================================================

// Job predicts every ticker of a watchlist in turn.
type Job struct {
	tickers []string
	ctrl    *controller.Controller
	out     io.Writer
	format  func(Result) string
	json    bool
	rnd     view.Rand
	logger  *zap.Logger
	now     func() time.Time

	// runs are serialized; the controller drives a single form.
	mu sync.Mutex
}

// Option configures a Job.
type Option func(*Job)

// WithJSON prints one JSON object per line instead of text.
func WithJSON(enabled bool) Option {
	return func(j *Job) { j.json = enabled }
}

// WithFormatter replaces FormatLine for text output.
func WithFormatter(format func(Result) string) Option {
	return func(j *Job) {
		if format != nil {
			j.format = format
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// WithRand sets the random source passed to the controller.
func WithRand(rnd view.Rand) Option {
	return func(j *Job) { j.rnd = rnd }
}

// NewJob creates a job for tickers. Tickers are normalized and deduplicated.
func NewJob(p controller.Predictor, tickers []string, out io.Writer, opts ...Option) *Job {
	j := &Job{
		tickers: util.SplitList(strings.Join(tickers, ",")),
		out:     out,
		format:  FormatLine,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = j.logger.With(zap.String("caller", "watch"))

	ctrlOpts := []controller.Option{controller.WithLogger(j.logger)}
	if j.rnd != nil {
		ctrlOpts = append(ctrlOpts, controller.WithRand(j.rnd))
	}
	j.ctrl = controller.New(p, view.NewForm(), ctrlOpts...)
	return j
}

// Tickers returns the normalized watchlist.
func (j *Job) Tickers() []string {
	return append([]string(nil), j.tickers...)
}

// RunOnce predicts every ticker and writes one line each. It returns the
// results in watchlist order.
func (j *Job) RunOnce(ctx context.Context) []Result {
	j.mu.Lock()
	defer j.mu.Unlock()

	results := make([]Result, 0, len(j.tickers))
	failed := 0
	for _, ticker := range j.tickers {
		if ctx.Err() != nil {
			break
		}
		r := j.predict(ctx, ticker)
		results = append(results, r)
		if r.Interrupted {
			j.logger.Info("watch round interrupted", zap.String("ticker", ticker))
			break
		}
		if !r.OK() {
			failed++
		}
		j.write(r)
	}

	j.logger.Info("watch round complete",
		zap.Int("tickers", len(results)),
		zap.Int("failed", failed),
	)
	return results
}

func (j *Job) predict(ctx context.Context, ticker string) Result {
	start := j.now()
	err := j.ctrl.Run(ctx, ticker)
	r := Result{
		Time:     start,
		Ticker:   ticker,
		Duration: j.now().Sub(start),
	}
	if err != nil {
		r.Err = err
		if predict.IsCanceled(err) {
			r.Interrupted = true
			r.Error = "interrupted"
			return r
		}
		r.Error = j.ctrl.Form().ErrorMessage
		if r.Error == "" {
			r.Error = err.Error()
		}
		return r
	}

	res := j.ctrl.Form().Results
	r.Prediction = res.BadgeText
	r.Confidence = res.Confidence
	r.Price = res.PriceLine
	r.Change = res.Change
	r.Tone = res.PriceColor
	return r
}

func (j *Job) write(r Result) {
	var line string
	if j.json {
		data, err := json.Marshal(r)
		if err != nil {
			j.logger.Error("encode result", zap.Error(err))
			return
		}
		line = string(data)
	} else {
		line = j.format(r)
	}
	if _, err := fmt.Fprintln(j.out, line); err != nil {
		j.logger.Warn("write result", zap.Error(err))
	}
}
