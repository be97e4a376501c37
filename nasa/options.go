package nasa

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimitObserver registers a callback invoked with the rate-limit
// header values of every response that carries them.
func WithRateLimitObserver(fn RateLimitObserver) Option {
	return func(c *Client) {
		c.rateLimitFn = fn
	}
}

// WithQuotas overrides the hourly quota figures quoted in rate-limit errors.
func WithQuotas(q Quotas) Option {
	return func(c *Client) {
		if q.DemoHourly > 0 && q.KeyHourly > 0 {
			c.quotas = q
		}
	}
}
