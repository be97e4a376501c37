package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// APOD is an Astronomy Picture of the Day entry.
type APOD struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

// APODRequest holds the filters for the APOD endpoint. Date is optional and
// must be YYYY-MM-DD when set; empty means today's picture.
type APODRequest struct {
	Date string
}

// APOD fetches the Astronomy Picture of the Day.
func (c *Client) APOD(ctx context.Context, req APODRequest) (*APOD, error) {
	params := url.Values{}
	if req.Date != "" {
		params.Set("date", req.Date)
	}

	notFound := "no astronomy picture found"
	if req.Date != "" {
		notFound = fmt.Sprintf("no astronomy picture found for %s", req.Date)
	}

	body, err := c.doRequest(ctx, "/planetary/apod", params, errorText{
		notFound:   notFound,
		badRequest: fmt.Sprintf("invalid APOD date %q, expected YYYY-MM-DD between 1995-06-16 and today", req.Date),
	})
	if err != nil {
		return nil, err
	}

	var apod APOD
	if err := json.Unmarshal(body, &apod); err != nil {
		return nil, fmt.Errorf("failed to parse APOD response: %w", err)
	}
	return &apod, nil
}
