// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Default messages used when a failing response carries no "error" field.
const (
	DefaultPredictErrorMessage = "Failed to fetch prediction"
	DefaultPriceErrorMessage   = "Failed to fetch price"
)

// PredictionRequestError is returned when the API answers with a non-2xx
// status. Message is the body's "error" field, or the endpoint default.
type PredictionRequestError struct {
	StatusCode int
	Message    string
}

func (e *PredictionRequestError) Error() string {
	return e.Message
}

// ClientError represents a transport or decoding failure.
// Error() yields the underlying failure's description so it can be shown to
// the user as is.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	switch {
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeInvalidResponse
)

// String returns a short name for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// IsCanceled reports whether err came from a request whose context was
// canceled, which is how superseded submissions end.
func IsCanceled(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeCanceled
	}
	return errors.Is(err, context.Canceled)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the prediction client.
type ClientConfig struct {
	// BaseURL is the API origin (default: http://127.0.0.1:5001)
	BaseURL string

	// PredictPath is the prediction endpoint path (default: /api/predict)
	PredictPath string

	// PricePath is the prefix of the price endpoint (default: /api/price)
	PricePath string

	// Timeout for a whole request including the body (default: 30s)
	Timeout time.Duration

	// RequestsPerMinute throttles outgoing requests; 0 disables throttling.
	RequestsPerMinute int

	// MaxBodyBytes caps how much of a response body is read (default: 1 MiB)
	MaxBodyBytes int64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://127.0.0.1:5001",
		PredictPath:  "/api/predict",
		PricePath:    "/api/price",
		Timeout:      30 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the prediction API.
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClientWithConfig creates a new client with custom configuration.
// Zero values are filled from DefaultConfig.
func NewClientWithConfig(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}

	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.PredictPath == "" {
		config.PredictPath = defaults.PredictPath
	}
	if config.PricePath == "" {
		config.PricePath = defaults.PricePath
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}

	c := &Client{
		config:     config,
		httpClient: newHTTPClient(config.Timeout),
		logger:     zap.NewNop(),
	}
	if config.RequestsPerMinute > 0 {
		every := time.Minute / time.Duration(config.RequestsPerMinute)
		c.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
	return c
}

// newHTTPClient builds a client with explicit transport limits; the default
// client has no timeout at all.
func newHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.With(zap.String("caller", "predict.Client"))
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST ID
// =============================================================================

type requestIDKey struct{}

// WithRequestID attaches an id sent as X-Request-ID and logged with the call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id attached by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Predict posts ticker to the prediction endpoint.
func (c *Client) Predict(ctx context.Context, ticker string) (*PredictionResponse, error) {
	body, err := json.Marshal(PredictRequest{Ticker: ticker})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	endpoint := c.config.BaseURL + c.config.PredictPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var result PredictionResponse
	parsed, err := c.do(req, ticker, DefaultPredictErrorMessage, &result)
	if err != nil {
		return nil, err
	}
	if err := checkPredictionFields(parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Cause: err}
	}
	return &result, nil
}

// Price fetches the latest quote for ticker.
func (c *Client) Price(ctx context.Context, ticker string) (*PriceQuote, error) {
	endpoint := c.config.BaseURL + c.config.PricePath + "/" + url.PathEscape(ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	var result PriceQuote
	if _, err := c.do(req, ticker, DefaultPriceErrorMessage, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends req and decodes the body into out, returning the generic parse of
// the body as well. The body is parsed as JSON before the status is checked;
// a failing status then yields a PredictionRequestError built from the
// parsed body.
func (c *Client) do(req *http.Request, ticker, defaultMsg string, out any) (any, error) {
	ctx := req.Context()
	requestID := RequestIDFrom(ctx)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	logger := c.logger.With(
		zap.String("method", req.Method),
		zap.String("ticker", ticker),
		zap.String("request_id", requestID),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(ctx, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		logger.Warn("read body failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, transportError(ctx, err)
	}
	logger.Info("finish request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(data)),
	)

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &PredictionRequestError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(parsed, defaultMsg),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Cause: err}
	}
	return parsed, nil
}

// errorMessage extracts a non-empty string "error" field from a parsed body.
func errorMessage(parsed any, fallback string) string {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return fallback
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return msg
	}
	return fallback
}

// transportError classifies a failure that happened before a response body
// was available.
func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Cause: err}
}
