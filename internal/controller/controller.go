// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller drives the prediction form: it validates and normalizes
// the ticker, starts the request, and applies its outcome to the view model.
//
// A submission is split in three steps so the interactive screen can run the
// network call off its update loop:
//
//	a := c.Submit(input)      // update loop: validate, show loading
//	o := c.Fetch(a)           // any goroutine: network only
//	c.Resolve(o)              // update loop: show results or error
//
// Every submission takes a new sequence number and cancels the previous
// request. Resolve ignores outcomes that are not from the latest submission,
// so the form always reflects the most recent one.
package controller

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/predict"
	"github.com/jeranaias/stockpulse/internal/util"
	"github.com/jeranaias/stockpulse/internal/view"
)

// EmptyTickerMessage is shown when the normalized input is empty.
const EmptyTickerMessage = "Please enter a stock ticker symbol"

// ErrEmptyTicker is returned by Run for empty input.
var ErrEmptyTicker = errors.New(EmptyTickerMessage)

// Predictor fetches a prediction for a normalized ticker.
// *predict.Client satisfies it.
type Predictor interface {
	Predict(ctx context.Context, ticker string) (*predict.PredictionResponse, error)
}

// Activation is one accepted submission.
type Activation struct {
	Seq       uint64
	Ticker    string
	RequestID string

	ctx context.Context
}

// Outcome is the result of fetching an Activation.
type Outcome struct {
	Seq       uint64
	Ticker    string
	RequestID string
	Response  *predict.PredictionResponse
	Err       error
	Duration  time.Duration
}

// Controller binds a Predictor to a view.Form.
type Controller struct {
	predictor Predictor
	form      *view.Form
	rnd       view.Rand
	logger    *zap.Logger
	base      context.Context

	mu     sync.Mutex
	seq    uint64
	cancel *cancelManager
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source of the decorative volume bar.
func WithRand(rnd view.Rand) Option {
	return func(c *Controller) {
		if rnd != nil {
			c.rnd = rnd
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContext sets the parent context of every request started by Submit.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.base = ctx
		}
	}
}

// New creates a controller writing to form.
func New(predictor Predictor, form *view.Form, opts ...Option) *Controller {
	c := &Controller{
		predictor: predictor,
		form:      form,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    zap.NewNop(),
		base:      context.Background(),
		cancel:    newCancelManager(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("caller", "controller"))
	return c
}

// Form returns the view model.
func (c *Controller) Form() *view.Form {
	return c.form
}

// Submit validates raw and, when it is non-empty after normalization, shows
// the loading region and returns the activation to fetch. For empty input it
// shows the validation error and returns nil.
func (c *Controller) Submit(raw string) *Activation {
	return c.begin(c.base, raw)
}

// SelectChip puts ticker in the input and submits it.
func (c *Controller) SelectChip(ticker string) *Activation {
	return c.begin(c.base, ticker)
}

func (c *Controller) begin(parent context.Context, raw string) *Activation {
	c.form.InputValue = raw

	ticker := util.NormalizeSymbol(raw)
	if ticker == "" {
		c.logger.Debug("rejecting empty ticker")
		c.form.ShowError(EmptyTickerMessage)
		return nil
	}

	ctx, cancel := context.WithCancel(parent)
	requestID := uuid.NewString()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.cancel.replace(cancel)
	c.mu.Unlock()

	c.logger.Info("submit",
		zap.String("ticker", ticker),
		zap.Uint64("seq", seq),
		zap.String("request_id", requestID),
	)
	c.form.ShowLoading()

	return &Activation{
		Seq:       seq,
		Ticker:    ticker,
		RequestID: requestID,
		ctx:       predict.WithRequestID(ctx, requestID),
	}
}

// Fetch performs the request for a. It does not touch the form and may run
// on any goroutine.
func (c *Controller) Fetch(a *Activation) Outcome {
	start := time.Now()
	resp, err := c.predictor.Predict(a.ctx, a.Ticker)
	return Outcome{
		Seq:       a.Seq,
		Ticker:    a.Ticker,
		RequestID: a.RequestID,
		Response:  resp,
		Err:       err,
		Duration:  time.Since(start),
	}
}

// Resolve applies o to the form if it belongs to the latest submission and
// reports whether it did.
func (c *Controller) Resolve(o Outcome) bool {
	c.mu.Lock()
	latest := o.Seq == c.seq
	if latest {
		c.cancel.clear()
	}
	c.mu.Unlock()

	logger := c.logger.With(
		zap.String("ticker", o.Ticker),
		zap.Uint64("seq", o.Seq),
		zap.String("request_id", o.RequestID),
		zap.Duration("duration", o.Duration),
	)

	if !latest {
		logger.Debug("discarding stale outcome", zap.Error(o.Err))
		return false
	}

	if o.Err != nil {
		logger.Warn("prediction failed", zap.Error(o.Err))
		c.form.ShowError(o.Err.Error())
		return true
	}

	logger.Info("prediction received", zap.String("prediction", o.Response.Prediction))
	c.form.ShowResults(view.Render(o.Response, c.rnd))
	return true
}

// Run submits raw and waits for its outcome. It is the synchronous path used
// by the one-shot command; the form holds the result either way.
func (c *Controller) Run(ctx context.Context, raw string) error {
	a := c.begin(ctx, raw)
	if a == nil {
		return ErrEmptyTicker
	}
	o := c.Fetch(a)
	c.Resolve(o)
	return o.Err
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	return c.cancel.active()
}

// Close cancels the in-flight request, if any.
func (c *Controller) Close() {
	c.cancel.clear()
}
