// Package client posts registration payloads to the remote endpoint and turns
// its JSON answers into success messages or typed failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultEndpoint is the public registration API.
	DefaultEndpoint = "https://webapis.bloomtechdev.com/registration"
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second

	tracerName = "github.com/goliatone/go-regform/pkg/client"
	spanName   = "registration.submit"

	maxResponseBytes = 1 << 20
)

// Client submits registrations over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    http.Header
	timeout    time.Duration
	tracer     trace.Tracer
	logger     *slog.Logger
}

type messageBody struct {
	Message string `json:"message"`
}

// New builds a Client targeting DefaultEndpoint unless WithEndpoint says
// otherwise.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		headers:    make(http.Header),
		timeout:    DefaultTimeout,
		tracer:     otel.Tracer(tracerName),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.endpoint = strings.TrimSpace(c.endpoint)
	if c.endpoint == "" {
		return nil, ErrEndpointRequired
	}
	u, err := url.Parse(c.endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.endpoint)
	}
	return c, nil
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts payload as JSON. A 2xx answer yields the "message" field of
// the body. Any other status yields a *SubmissionError carrying the body's
// message, or the status text when the body has none. Requests that never get
// an answer yield a *RequestError.
func (c *Client) Submit(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("client: encode payload: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", c.endpoint),
		),
	)
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("client: build request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := &RequestError{Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, reqErr.UserMessage())
		c.logger.Debug("registration request failed", "endpoint", c.endpoint, "error", err)
		return "", reqErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	message := decodeMessage(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if message == "" {
			message = statusText(resp.StatusCode)
		}
		subErr := &SubmissionError{StatusCode: resp.StatusCode, Message: message}
		span.SetStatus(codes.Error, message)
		c.logger.Debug("registration rejected", "status", resp.StatusCode, "message", message)
		return "", subErr
	}
	if readErr != nil {
		reqErr := &RequestError{Err: readErr}
		span.RecordError(readErr)
		span.SetStatus(codes.Error, reqErr.UserMessage())
		return "", reqErr
	}

	span.SetStatus(codes.Ok, "")
	return message, nil
}

func decodeMessage(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", code)
}
