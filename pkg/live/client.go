package live

import (
	"context"
	"net/http"
)

// DefaultWebSocketURL is the default realtime WebSocket endpoint.
const DefaultWebSocketURL = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// Client is the realtime voice API client.
type Client struct {
	config *clientConfig
}

// clientConfig holds the client configuration.
type clientConfig struct {
	apiKey     string
	wsURL      string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*clientConfig)

// NewClient creates a new realtime client.
func NewClient(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		panic("live: API key is required")
	}

	cfg := &clientConfig{
		apiKey:     apiKey,
		wsURL:      DefaultWebSocketURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{config: cfg}
}

// WithWebSocketURL overrides the WebSocket endpoint.
func WithWebSocketURL(url string) Option {
	return func(c *clientConfig) {
		c.wsURL = url
	}
}

// WithHTTPClient sets a custom HTTP client used for the WebSocket handshake.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// Connect dials the endpoint and performs the setup handshake. The returned
// session is live: its read loop is already consuming server events.
func (c *Client) Connect(ctx context.Context, config *SetupConfig) (Session, error) {
	return c.connect(ctx, config)
}
