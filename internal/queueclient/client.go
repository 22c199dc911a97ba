package queueclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"zender/internal/config"
)

// ErrDuplicate reports that the queue already holds a pending request
// for the same URL.
var ErrDuplicate = errors.New("request already queued")

// ErrUnauthorized reports that the queue service rejected the caller.
var ErrUnauthorized = errors.New("queue service rejected credentials")

// Request is the record the queue service accepts.
type Request struct {
	URL                     string `json:"url"`
	PreferredQualityMatcher string `json:"preferredQualityMatcher,omitempty"`
	OutputFilename          string `json:"outputFilename,omitempty"`
}

// Client posts download requests to the queue service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for submission diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a queue client from configuration.
func New(cfg config.Queue, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("queue url required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Submit posts one request. 201 means accepted; 409 maps to
// ErrDuplicate, 401 to ErrUnauthorized, anything else is a generic
// failure.
func (c *Client) Submit(ctx context.Context, request Request) error {
	if strings.TrimSpace(request.URL) == "" {
		return errors.New("request url must not be empty")
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode queue request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build queue request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute queue request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		c.logger.Info("request queued", slog.String("url", request.URL))
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrDuplicate, request.URL)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("queue service returned %d", resp.StatusCode)
	}
}
