// Package osdr provides a client for NASA's Open Science Data Repository:
// dataset search, per-study metadata and file listings, and the GeneLab
// experiment and mission indexes. The host requires no API key.
package osdr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/astrodash/astrodash/apierror"
)

// DefaultBaseURL is the OSDR host. File download paths returned by the
// metadata endpoints are relative to it.
const DefaultBaseURL = "https://osdr.nasa.gov"

// Client wraps the OSDR API. The repository's search backend is slow and
// flaky compared to the other NASA hosts, hence the longer default timeout
// and the single retry on the search path.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	retryDelay time.Duration
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

// WithRetryDelay sets the fixed delay before the single search retry.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

// NewClient creates an OSDR client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		retryDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
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

	c.logger.Debug().Str("path", path).Msg("OSDR request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierror.ClassifyTransport(err, "OSDR unreachable")
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
		return apierror.New(apierror.KindRateLimited, "OSDR rate limit exceeded, wait a moment and try again")
	case status == http.StatusBadRequest:
		return apierror.New(apierror.KindBadRequest, et.badRequest)
	case status >= 500:
		return &apierror.Error{
			Kind:       apierror.KindServerError,
			Message:    fmt.Sprintf("OSDR server error (status %d), the repository may be down for maintenance", status),
			StatusCode: status,
		}
	default:
		return &apierror.Error{
			Kind:       apierror.KindUnknown,
			Message:    fmt.Sprintf("OSDR returned unexpected status %d", status),
			StatusCode: status,
			Body:       string(body),
		}
	}
}

// StudyMetadata fetches the full metadata document for a study. The document
// schema varies widely between studies, so it is returned as parsed JSON
// without reshaping.
func (c *Client) StudyMetadata(ctx context.Context, studyID string) (map[string]any, error) {
	if studyID == "" {
		return nil, fmt.Errorf("study identifier is required")
	}

	path := fmt.Sprintf("/osdr/data/osd/meta/%s", url.PathEscape(studyID))

	body, err := c.doRequest(ctx, path, nil, errorText{
		notFound:   fmt.Sprintf("study %q not found in OSDR", studyID),
		badRequest: fmt.Sprintf("invalid study identifier %q, expected an OSD accession like OSD-87", studyID),
	})
	if err != nil {
		return nil, err
	}

	var metadata map[string]any
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse study metadata: %w", err)
	}
	return metadata, nil
}

// StudyFile is one downloadable file belonging to a study. URL is the fully
// qualified download location resolved via FileURL.
type StudyFile struct {
	Name      string `json:"file_name"`
	Category  string `json:"category"`
	Size      int64  `json:"file_size"`
	RemoteURL string `json:"remote_url"`
	URL       string `json:"-"`
}

// StudyFiles lists the files attached to a study.
func (c *Client) StudyFiles(ctx context.Context, studyID string) ([]StudyFile, error) {
	if studyID == "" {
		return nil, fmt.Errorf("study identifier is required")
	}

	path := fmt.Sprintf("/osdr/data/osd/files/%s", url.PathEscape(studyID))

	body, err := c.doRequest(ctx, path, nil, errorText{
		notFound:   fmt.Sprintf("no files found for study %q", studyID),
		badRequest: fmt.Sprintf("invalid study identifier %q, expected an OSD accession like OSD-87", studyID),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Studies map[string]struct {
			FileCount  int         `json:"file_count"`
			StudyFiles []StudyFile `json:"study_files"`
		} `json:"studies"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse study files response: %w", err)
	}

	var files []StudyFile
	for _, study := range response.Studies {
		for _, f := range study.StudyFiles {
			f.URL = FileURL(f.RemoteURL)
			files = append(files, f)
		}
	}
	return files, nil
}

// Experiment is a GeneLab experiment index entry.
type Experiment struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Mission is a GeneLab mission index entry.
type Mission struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Experiments lists the GeneLab experiment index.
func (c *Client) Experiments(ctx context.Context) ([]Experiment, error) {
	body, err := c.doRequest(ctx, "/geode-py/ws/api/experiments", nil, errorText{
		notFound:   "OSDR experiment index not found",
		badRequest: "invalid experiment index request",
	})
	if err != nil {
		return nil, err
	}

	var experiments []Experiment
	if err := json.Unmarshal(body, &experiments); err != nil {
		return nil, fmt.Errorf("failed to parse experiments response: %w", err)
	}
	return experiments, nil
}

// Missions lists the GeneLab mission index.
func (c *Client) Missions(ctx context.Context) ([]Mission, error) {
	body, err := c.doRequest(ctx, "/geode-py/ws/api/missions", nil, errorText{
		notFound:   "OSDR mission index not found",
		badRequest: "invalid mission index request",
	})
	if err != nil {
		return nil, err
	}

	var missions []Mission
	if err := json.Unmarshal(body, &missions); err != nil {
		return nil, fmt.Errorf("failed to parse missions response: %w", err)
	}
	return missions, nil
}

// FileURL resolves a relative file path from a metadata response against the
// OSDR host. Already-absolute URLs pass through unchanged. No network I/O
// happens here.
func FileURL(remotePath string) string {
	if remotePath == "" {
		return ""
	}
	if strings.HasPrefix(remotePath, "http://") || strings.HasPrefix(remotePath, "https://") {
		return remotePath
	}
	if !strings.HasPrefix(remotePath, "/") {
		remotePath = "/" + remotePath
	}
	return DefaultBaseURL + remotePath
}
