// Package api implements the chat client that talks to the relay.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/barbchat/internal/errors"
	"github.com/diogo/barbchat/internal/models"
)

// maxErrorBody caps how much of a rejected response is kept for the error
const maxErrorBody = 1 << 20

// ChatClient is the interface the TUI and the one-shot command depend on
type ChatClient interface {
	Send(ctx context.Context, messages []models.Message) (*Stream, error)
	Ping(ctx context.Context) error
	Model() string
	RelayURL() string
}

// Client sends conversations to the relay and hands back the reply stream
type Client struct {
	httpClient Doer
	relayURL   string
	model      string
	maxTokens  int
	logger     zerolog.Logger
	mu         sync.RWMutex
	closed     bool
}

var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the model named in every request
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens sets the reply token budget
func WithMaxTokens(maxTokens int) ClientOption {
	return func(c *Client) {
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithRelayURL sets the relay base URL
func WithRelayURL(relayURL string) ClientOption {
	return func(c *Client) {
		if relayURL != "" {
			c.relayURL = strings.TrimRight(relayURL, "/")
		}
	}
}

// WithHTTPClient replaces the TLS client, mainly for tests
func WithHTTPClient(httpClient Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the client logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Client. Without WithHTTPClient a TLS client with no
// timeout is created, since a reply may stream for as long as it needs.
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		relayURL:  models.DefaultRelayURL,
		model:     models.DefaultModel,
		maxTokens: models.DefaultMaxTokens,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		httpClient, err := NewHTTPClient(0)
		if err != nil {
			return nil, err
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Model returns the model named in requests
func (c *Client) Model() string {
	return c.model
}

// RelayURL returns the relay base URL
func (c *Client) RelayURL() string {
	return c.relayURL
}

// Close marks the client closed; later calls fail
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Send posts the conversation to the relay. On a 2xx response the returned
// Stream owns the open body; any other status is returned as an APIError.
func (c *Client) Send(ctx context.Context, messages []models.Message) (*Stream, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	payload, err := json.Marshal(models.NewChatRequest(c.model, c.maxTokens, messages))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.relayURL + models.PathChat
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("model", c.model).
		Int("messages", len(messages)).
		Msg("sending chat request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("POST "+endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("relay rejected chat request")
		return nil, apierrors.NewAPIError(resp.StatusCode, models.PathChat, body)
	}

	return NewStream(resp.Body), nil
}

// Ping checks that the relay answers its health endpoint
func (c *Client) Ping(ctx context.Context) error {
	endpoint := c.relayURL + models.PathHealth
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.NewNetworkError("GET "+endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierrors.NewAPIError(resp.StatusCode, models.PathHealth, body)
	}
	return nil
}
