package prediction

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every individual prediction call.
const DefaultTimeout = 25 * time.Second

// ClientOption represents an option for configuring the prediction client.
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the prediction client.
type ClientConfig struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:   DefaultTimeout,
		UserAgent: "visiongate/1.0",
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. The caller owns its timeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}
