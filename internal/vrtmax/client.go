package vrtmax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zender/internal/config"
)

const (
	graphqlPath      = "/vrtnu-api/graphql/public/v1"
	tokensPath       = "/vualto-video-aggregator-web/rest/external/v2/tokens"
	mediaItemsPath   = "/media-aggregator/v2/media-items/"
	aggregatorClient = "vrtnu-web@PROD"
)

// Client provides access to the VRT MAX HTTP surface: the public GraphQL
// API, the token issuer, the media aggregator, and the player bundle.
type Client struct {
	baseURL      string
	mediaBaseURL string
	playerJSURL  string
	userAgent    string
	httpClient   *http.Client
	logger       *slog.Logger
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

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a VRT MAX API client from platform configuration.
func NewClient(cfg config.VRTMax, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("vrtmax base url required")
	}
	mediaBaseURL := strings.TrimRight(strings.TrimSpace(cfg.MediaBaseURL), "/")
	if mediaBaseURL == "" {
		return nil, errors.New("vrtmax media base url required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:      baseURL,
		mediaBaseURL: mediaBaseURL,
		playerJSURL:  strings.TrimSpace(cfg.PlayerJSURL),
		userAgent:    "zender",
		httpClient:   &http.Client{Timeout: timeout},
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// graphql posts a named operation to the public GraphQL endpoint and
// decodes the response envelope into out.
func (c *Client) graphql(ctx context.Context, operationName, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", operationName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphqlPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", operationName, err)
	}
	req.Header.Set("Accept", "application/graphql+json, application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("x-vrt-client-name", "WEB")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute %s (latency=%v): %w", operationName, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d (latency=%v)", operationName, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operationName, err)
	}
	c.logger.Debug("graphql call",
		slog.String("operation", operationName),
		slog.Duration("latency", latency))
	return nil
}

// PlayerToken exchanges the identity token and player info for a
// short-lived player token at the token issuer.
func (c *Client) PlayerToken(ctx context.Context, identityToken, playerInfo string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"identityToken": identityToken,
		"playerInfo":    playerInfo,
	})
	if err != nil {
		return "", fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mediaBaseURL+tokensPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		VRTPlayerToken string `json:"vrtPlayerToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.VRTPlayerToken == "" {
		return "", errors.New("token response carried no vrtPlayerToken")
	}
	return payload.VRTPlayerToken, nil
}

// MediaItem is the aggregator's description of one playable stream.
type MediaItem struct {
	Title      string  `json:"title"`
	DRM        *string `json:"drm"`
	Duration   int64   `json:"duration"`
	TargetURLs []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"targetUrls"`
}

// MediaItem fetches the aggregator record for a stream id using a valid
// player token.
func (c *Client) MediaItem(ctx context.Context, streamID, playerToken string) (*MediaItem, error) {
	endpoint := c.mediaBaseURL + mediaItemsPath + url.PathEscape(streamID) +
		"?vrtPlayerToken=" + url.QueryEscape(playerToken) +
		"&client=" + url.QueryEscape(aggregatorClient)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build aggregator request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute aggregator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator returned %d for stream %s", resp.StatusCode, streamID)
	}

	var item MediaItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode aggregator response: %w", err)
	}
	return &item, nil
}

// ManifestURL selects the adaptive-streaming target from a media item.
// The match is a case-insensitive substring check on the declared type;
// entry order does not matter. Absence yields ErrNoManifest.
func (m *MediaItem) ManifestURL() (string, error) {
	for _, target := range m.TargetURLs {
		if strings.Contains(strings.ToLower(target.Type), "mpeg_dash") {
			return target.URL, nil
		}
	}
	return "", ErrNoManifest
}

// FetchBody retrieves a document body, used for optional manifest
// content inclusion.
func (c *Client) FetchBody(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}
