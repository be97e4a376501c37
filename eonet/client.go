// Package eonet provides a client for the Earth Observatory Natural Event
// Tracker (EONET) v3 API. The host requires no API key.
package eonet

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

// DefaultBaseURL is the EONET v3 host and base path.
const DefaultBaseURL = "https://eonet.gsfc.nasa.gov/api/v3"

// Client wraps the EONET API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

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

// NewClient creates an EONET client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Event is one tracked natural event.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Closed      string `json:"closed"`
	Categories  []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"categories"`
	Sources []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"sources"`
	Geometry []struct {
		Date        string    `json:"date"`
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// Category is one EONET event category.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// EventsRequest holds the event feed filters. Days limits the lookback
// window; Category restricts to a single category id. Both optional.
type EventsRequest struct {
	Days     *int
	Category string
}

// Events lists currently tracked natural events.
func (c *Client) Events(ctx context.Context, req EventsRequest) ([]Event, error) {
	params := url.Values{}
	if req.Days != nil {
		params.Set("days", strconv.Itoa(*req.Days))
	}
	if req.Category != "" {
		params.Set("category", req.Category)
	}

	body, err := c.doRequest(ctx, "/events", params, errorText{
		notFound:   fmt.Sprintf("no natural events found for category %q", req.Category),
		badRequest: fmt.Sprintf("invalid event filter: check the days value and category id %q", req.Category),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse EONET events response: %w", err)
	}
	return response.Events, nil
}

// Categories lists the event categories EONET tracks.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	body, err := c.doRequest(ctx, "/categories", nil, errorText{
		notFound:   "EONET categories not found",
		badRequest: "invalid EONET categories request",
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse EONET categories response: %w", err)
	}
	return response.Categories, nil
}

type errorText struct {
	notFound   string
	badRequest string
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values, et errorText) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("path", path).Msg("EONET request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierror.ClassifyTransport(err, "EONET unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, body, et)
	}

	return body, nil
}

func classify(status int, body []byte, et errorText) error {
	switch {
	case status == http.StatusNotFound:
		return apierror.New(apierror.KindNotFound, et.notFound)
	case status == http.StatusTooManyRequests:
		return apierror.New(apierror.KindRateLimited, "EONET rate limit exceeded, wait a moment and try again")
	case status == http.StatusBadRequest:
		return apierror.New(apierror.KindBadRequest, et.badRequest)
	case status >= 500:
		return &apierror.Error{
			Kind:       apierror.KindServerError,
			Message:    fmt.Sprintf("EONET server error (status %d), try again later", status),
			StatusCode: status,
		}
	default:
		return &apierror.Error{
			Kind:       apierror.KindUnknown,
			Message:    fmt.Sprintf("EONET returned unexpected status %d", status),
			StatusCode: status,
			Body:       string(body),
		}
	}
}
