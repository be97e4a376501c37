package osdr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/avast/retry-go"

	"github.com/astrodash/astrodash/apierror"
)

// searchAttempts bounds the search path to one retry: two attempts total.
// No other operation in this package retries.
const searchAttempts = 2

// SearchRequest holds the dataset search parameters. Term is required; From
// is the result offset; Size defaults to 20; Type selects the data source
// and defaults to "cgene" (NASA's authoritative GeneLab data).
type SearchRequest struct {
	Term string
	From int
	Size int
	Type string
}

// Study is a flattened search hit. Optional fields are empty when the source
// record does not carry them.
type Study struct {
	Identifier  string
	Title       string
	Description string
	Organism    string
	AssayType   string
	ProjectType string
}

// SearchResults is the flattened search response.
type SearchResults struct {
	Hits    int
	Studies []Study
}

// esTotal tolerates both the bare-integer and the {"value": N} shapes the
// search backend has served for hits.total.
type esTotal struct {
	value int
}

func (t *esTotal) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		t.value = n
		return nil
	}
	var obj struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.value = obj.Value
	return nil
}

// searchResponse is the raw search-engine envelope the upstream exposes.
type searchResponse struct {
	Hits struct {
		Total esTotal `json:"total"`
		Hits  []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchStudies searches the OSDR dataset index and flattens the deeply
// nested search-engine envelope into SearchResults.
//
// This is the one operation that retries: if the first attempt fails with a
// timeout or a connection-level error, it is retried exactly once after a
// fixed delay with identical parameters. All other failures, and a second
// failure, are returned as-is.
func (c *Client) SearchStudies(ctx context.Context, req SearchRequest) (*SearchResults, error) {
	if req.Term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	size := req.Size
	if size <= 0 {
		size = 20
	}
	dataSource := req.Type
	if dataSource == "" {
		dataSource = "cgene"
	}

	params := url.Values{}
	params.Set("term", req.Term)
	params.Set("from", strconv.Itoa(req.From))
	params.Set("size", strconv.Itoa(size))
	params.Set("type", dataSource)

	et := errorText{
		notFound:   fmt.Sprintf("no studies found for %q", req.Term),
		badRequest: fmt.Sprintf("invalid study search: check the term %q and the from/size paging values", req.Term),
	}

	var body []byte
	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return retry.Unrecoverable(err)
			}
			var reqErr error
			body, reqErr = c.doRequest(ctx, "/osdr/data/search", params, et)
			return reqErr
		},
		retry.Attempts(searchAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			retryable := apierror.IsRetryable(err)
			if retryable {
				c.logger.Warn().Err(err).Msg("OSDR search failed, retrying once")
			}
			return retryable
		}),
	)
	if err != nil {
		return nil, err
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse study search response: %w", err)
	}

	return flattenSearch(&raw), nil
}

// flattenSearch reshapes the search envelope into SearchResults. The source
// schema is inconsistent across records, so each display field is extracted
// through a prioritized fallback chain: a human-readable field first, then a
// raw accession field, then a generated placeholder.
func flattenSearch(raw *searchResponse) *SearchResults {
	results := &SearchResults{
		Hits:    raw.Hits.Total.value,
		Studies: make([]Study, 0, len(raw.Hits.Hits)),
	}

	for i, hit := range raw.Hits.Hits {
		identifier := firstString(
			hit.Source["Study Identifier"],
			hit.Source["Accession"],
			hit.ID,
		)
		if identifier == "" {
			identifier = fmt.Sprintf("OSD-unknown-%d", i+1)
		}

		title := firstString(hit.Source["Study Title"])
		if title == "" {
			title = identifier
		}

		description := firstString(hit.Source["Study Description"])
		if description == "" {
			description = "No description available"
		}

		results.Studies = append(results.Studies, Study{
			Identifier:  identifier,
			Title:       title,
			Description: description,
			Organism:    firstString(hit.Source["organism"]),
			AssayType:   firstString(hit.Source["Study Assay Technology Type"]),
			ProjectType: firstString(hit.Source["Project Type"]),
		})
	}

	return results
}

// firstString returns the first non-empty string among the candidates.
// Candidates may be strings or arrays of strings; anything else is skipped.
func firstString(candidates ...any) string {
	for _, candidate := range candidates {
		switch v := candidate.(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}
