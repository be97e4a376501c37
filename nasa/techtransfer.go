package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// TechTransferCollection selects which Technology Transfer catalog to query.
type TechTransferCollection string

// Collections exposed by the TechTransfer API.
const (
	CollectionPatent       TechTransferCollection = "patent"
	CollectionPatentIssued TechTransferCollection = "patent_issued"
	CollectionSoftware     TechTransferCollection = "software"
	CollectionSpinoff      TechTransferCollection = "spinoff"
)

// Valid reports whether the collection is one the upstream serves.
func (c TechTransferCollection) Valid() bool {
	switch c {
	case CollectionPatent, CollectionPatentIssued, CollectionSoftware, CollectionSpinoff:
		return true
	}
	return false
}

// TechTransferRequest holds the filters for the TechTransfer endpoints.
// Collection defaults to patents; Query is optional free text; Page defaults
// to 1.
type TechTransferRequest struct {
	Collection TechTransferCollection
	Query      string
	Page       int
}

// TechTransferResponse is the raw TechTransfer envelope. Each result is a
// positional array rather than an object; Records flattens them.
type TechTransferResponse struct {
	Results [][]any `json:"results"`
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	PerPage int     `json:"perpage"`
	Page    int     `json:"page"`
}

// TechTransferRecord is a flattened TechTransfer result row.
type TechTransferRecord struct {
	ID          string
	CaseNumber  string
	Title       string
	Description string
}

var htmlTags = regexp.MustCompile(`<[^>]+>`)

// Records flattens the positional result arrays. The upstream layout puts the
// record id at index 0, the case number at 1, the title at 2 and the
// description at 3; titles and descriptions carry embedded highlight markup
// which is stripped.
func (r *TechTransferResponse) Records() []TechTransferRecord {
	records := make([]TechTransferRecord, 0, len(r.Results))
	for _, row := range r.Results {
		records = append(records, TechTransferRecord{
			ID:          cleanField(row, 0),
			CaseNumber:  cleanField(row, 1),
			Title:       cleanField(row, 2),
			Description: cleanField(row, 3),
		})
	}
	return records
}

func cleanField(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, ok := row[idx].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(htmlTags.ReplaceAllString(s, ""))
}

// TechTransfer searches a Technology Transfer catalog.
func (c *Client) TechTransfer(ctx context.Context, req TechTransferRequest) (*TechTransferResponse, error) {
	collection := req.Collection
	if collection == "" {
		collection = CollectionPatent
	}
	if !collection.Valid() {
		return nil, fmt.Errorf("unknown tech transfer collection %q", collection)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if req.Query != "" {
		params.Set("query", req.Query)
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/techtransfer/%s/", collection), params, errorText{
		notFound:   fmt.Sprintf("no %s records found for query %q", collection, req.Query),
		badRequest: fmt.Sprintf("invalid tech transfer query %q for the %s collection", req.Query, collection),
	})
	if err != nil {
		return nil, err
	}

	var response TechTransferResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse tech transfer response: %w", err)
	}
	return &response, nil
}
