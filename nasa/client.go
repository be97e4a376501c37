package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/astrodash/astrodash/apierror"
)

// DefaultBaseURL is the primary NASA API host.
const DefaultBaseURL = "https://api.nasa.gov"

// Client wraps the api.nasa.gov endpoints. It is stateless apart from its
// configuration; the API key is captured at construction, so a client built
// before a key change keeps sending the old key.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	logger      zerolog.Logger
	rateLimitFn RateLimitObserver
	quotas      Quotas
}

// RateLimitObserver receives the X-RateLimit-* header values from each
// response that carries them. The caller is expected to forward these to the
// key store; the client itself never records them anywhere.
type RateLimitObserver func(remaining, limit int, resetTime string)

// Quotas holds the documented hourly request quotas quoted in rate-limit
// error messages. These are upstream policy, not client behavior, and may
// drift; they are configurable rather than re-derived.
type Quotas struct {
	DemoHourly int
	KeyHourly  int
}

// DefaultQuotas matches the limits NASA documents for the demo key and a
// registered key.
var DefaultQuotas = Quotas{DemoHourly: 30, KeyHourly: 1000}

// NewClient creates a client for api.nasa.gov.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NASA API key is required")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		quotas:     DefaultQuotas,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorText carries the endpoint-specific messages used when classifying a
// 404 or 400 response.
type errorText struct {
	notFound   string
	badRequest string
}

// doRequest performs a GET against path with the supplied query parameters,
// observes rate-limit headers, and classifies any failure.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, et errorText) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("path", path).Msg("NASA API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierror.ClassifyTransport(err, "NASA API unreachable")
	}
	defer resp.Body.Close()

	c.observeRateLimit(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classifyStatus(resp.StatusCode, body, et)
	}

	return body, nil
}

// observeRateLimit forwards X-RateLimit-* headers to the registered observer.
// Responses without the headers (and error responses stripped of them) are
// ignored; the snapshot is only ever built from observed values.
func (c *Client) observeRateLimit(h http.Header) {
	if c.rateLimitFn == nil {
		return
	}
	limitStr := h.Get("X-RateLimit-Limit")
	remainingStr := h.Get("X-RateLimit-Remaining")
	if limitStr == "" || remainingStr == "" {
		return
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return
	}
	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return
	}
	c.rateLimitFn(remaining, limit, h.Get("X-RateLimit-Reset"))
}

// classifyStatus maps a non-2xx response to a classified error.
func (c *Client) classifyStatus(status int, body []byte, et errorText) error {
	switch {
	case status == http.StatusNotFound:
		return apierror.New(apierror.KindNotFound, et.notFound)
	case status == http.StatusTooManyRequests:
		return apierror.Newf(apierror.KindRateLimited,
			"NASA API rate limit exceeded: %s; wait for the window to reset or configure a personal key",
			c.quotaText())
	case status == http.StatusBadRequest:
		return apierror.New(apierror.KindBadRequest, et.badRequest)
	case status >= 500:
		return &apierror.Error{
			Kind:       apierror.KindServerError,
			Message:    fmt.Sprintf("NASA API server error (status %d), try again later", status),
			StatusCode: status,
		}
	default:
		return &apierror.Error{
			Kind:       apierror.KindUnknown,
			Message:    fmt.Sprintf("NASA API returned unexpected status %d%s", status, upstreamMessage(body)),
			StatusCode: status,
			Body:       string(body),
		}
	}
}

func (c *Client) quotaText() string {
	if c.apiKey == "DEMO_KEY" {
		return fmt.Sprintf("the demo key allows %d requests per hour", c.quotas.DemoHourly)
	}
	return fmt.Sprintf("your key allows %d requests per hour", c.quotas.KeyHourly)
}

// upstreamMessage digs a human-readable message out of the error body when
// one is present. NASA uses both {"error":{"message":...}} and
// {"error_message":...} shapes depending on the endpoint.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		ErrorMessage string `json:"error_message"`
		Msg          string `json:"msg"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, msg := range []string{envelope.Error.Message, envelope.ErrorMessage, envelope.Msg} {
		if strings.TrimSpace(msg) != "" {
			return ": " + msg
		}
	}
	return ""
}
