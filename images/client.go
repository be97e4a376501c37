// Package images provides a client for the NASA Image and Video Library
// search API at images-api.nasa.gov. The host requires no API key.
package images

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

// DefaultBaseURL is the media search host.
const DefaultBaseURL = "https://images-api.nasa.gov"

// Client wraps the media search API. Search endpoints return large payloads,
// so the default timeout is longer than the primary host's.
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

// NewClient creates a media search client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchRequest holds the media search filters. Query is required; MediaType
// narrows to image/video/audio; YearStart and YearEnd bound the creation
// year; Page defaults to 1.
type SearchRequest struct {
	Query     string
	MediaType string
	YearStart string
	YearEnd   string
	Page      int
}

// SearchResponse is the library's collection envelope.
type SearchResponse struct {
	Collection struct {
		Items []SearchItem `json:"items"`
		Metadata struct {
			TotalHits int `json:"total_hits"`
		} `json:"metadata"`
		Links []struct {
			Rel    string `json:"rel"`
			Prompt string `json:"prompt"`
			Href   string `json:"href"`
		} `json:"links"`
	} `json:"collection"`
}

// SearchItem is one media asset with its descriptive data and preview links.
type SearchItem struct {
	Href string `json:"href"`
	Data []struct {
		NasaID      string   `json:"nasa_id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		MediaType   string   `json:"media_type"`
		DateCreated string   `json:"date_created"`
		Center      string   `json:"center"`
		Keywords    []string `json:"keywords"`
	} `json:"data"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// Search queries the image and video library.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("page", strconv.Itoa(page))
	if req.MediaType != "" {
		params.Set("media_type", req.MediaType)
	}
	if req.YearStart != "" {
		params.Set("year_start", req.YearStart)
	}
	if req.YearEnd != "" {
		params.Set("year_end", req.YearEnd)
	}

	requestURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("query", req.Query).Int("page", page).Msg("media library search")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierror.ClassifyTransport(err, "NASA media library unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, body, req)
	}

	var response SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse media search response: %w", err)
	}
	return &response, nil
}

func classify(status int, body []byte, req SearchRequest) error {
	switch {
	case status == http.StatusNotFound:
		return apierror.Newf(apierror.KindNotFound, "no media found for query %q", req.Query)
	case status == http.StatusTooManyRequests:
		return apierror.New(apierror.KindRateLimited, "NASA media library rate limit exceeded, wait a moment and try again")
	case status == http.StatusBadRequest:
		return apierror.Newf(apierror.KindBadRequest,
			"invalid media search: check the media_type (image, video or audio) and the year_start/year_end values for query %q", req.Query)
	case status >= 500:
		return &apierror.Error{
			Kind:       apierror.KindServerError,
			Message:    fmt.Sprintf("NASA media library server error (status %d), try again later", status),
			StatusCode: status,
		}
	default:
		return &apierror.Error{
			Kind:       apierror.KindUnknown,
			Message:    fmt.Sprintf("NASA media library returned unexpected status %d", status),
			StatusCode: status,
			Body:       string(body),
		}
	}
}
