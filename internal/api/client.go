// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the plume chat backend.
//
// The backend exposes two endpoints:
//
//	POST /chat        {"message","chatId"} -> {"response"} or {"error"}
//	POST /log_action  {"action","content","timestamp"}
//
// The /chat endpoint reports application failures in the body, not the
// status line: a 500 with {"error": "..."} is a valid, renderable reply.
// The client therefore parses the body as JSON regardless of status and
// only treats transport-level failures (connect, timeout, unparseable
// body) as errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default timeout for chat requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps how much of a reply body is read.
	// SECURITY: response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// logActionBurst and logActionPerSec throttle feedback logging so
	// rapid reaction toggling cannot flood the endpoint.
	logActionBurst  = 5
	logActionPerSec = 2
)

// Error variables for common client failures.
var (
	// ErrUnreachable indicates the backend could not be reached or
	// did not answer in time.
	ErrUnreachable = errors.New("chat backend unreachable")

	// ErrMalformedReply indicates the backend answered with a body
	// that is not the expected JSON shape.
	ErrMalformedReply = errors.New("malformed backend reply")

	// ErrThrottled indicates a feedback log call was dropped by the
	// local rate limiter.
	ErrThrottled = errors.New("action log throttled")
)

// APIError is an application-level failure reported by the backend in
// the reply body. It is distinct from a transport failure: the request
// round-tripped and the backend chose to answer with an error message.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Action identifies a user feedback gesture sent to /log_action.
type Action string

// Known feedback actions.
const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
	ActionCopy    Action = "copy"
	ActionShare   Action = "share"
)

// chatRequest is the body for POST /chat.
type chatRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId"`
}

// chatResponse is the reply shape for POST /chat. Exactly one of the
// two fields is expected to be set.
type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// logActionRequest is the body for POST /log_action.
type logActionRequest struct {
	Action    Action `json:"action"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// PERFORMANCE: one shared transport with connection pooling for all
// client instances.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Client talks to the plume chat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(logActionPerSec), logActionBurst),
		logger:     logger,
	}
}

// WithTimeout sets the per-request timeout for chat requests.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point the client at an httptest server with short timeouts.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send posts a user message to /chat and returns the assistant reply.
//
// The reply body is parsed as JSON regardless of HTTP status. A body
// carrying {"error": s} returns an *APIError wrapping s; callers render
// it as an assistant message, not as a transport failure. Transport
// failures wrap ErrUnreachable; unparseable bodies wrap
// ErrMalformedReply.
func (c *Client) Send(ctx context.Context, chatID, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{Message: message, ChatID: chatID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("chat request failed", "err", err)
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	c.logger.Debug("chat response",
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if parsed.Error != "" {
		return "", &APIError{Message: parsed.Error}
	}
	if parsed.Response == "" {
		return "", fmt.Errorf("%w: neither response nor error present", ErrMalformedReply)
	}
	return parsed.Response, nil
}

// LogAction posts a feedback gesture to /log_action.
//
// This is fire-and-forget: callers ignore the returned error beyond
// diagnostics, and a failed log never surfaces in the UI. A local rate
// limiter drops excess calls (ErrThrottled) rather than queueing them.
func (c *Client) LogAction(ctx context.Context, action Action, content string) error {
	if !c.limiter.Allow() {
		c.logger.Debug("action log dropped", "action", action)
		return ErrThrottled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(logActionRequest{
		Action:    action,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal action log: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/log_action", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create action log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("action log failed", "action", action, "err", err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	if resp.StatusCode >= 400 {
		c.logger.Warn("action log rejected", "action", action, "status", resp.StatusCode)
		return fmt.Errorf("action log rejected: status %d", resp.StatusCode)
	}
	return nil
}

// readBody reads a response body with a size cap.
// SECURITY: limit prevents memory exhaustion from a misbehaving backend.
func readBody(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}
