package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// EPICImageType selects between the two EPIC processing pipelines.
type EPICImageType string

// EPIC image types.
const (
	EPICNatural  EPICImageType = "natural"
	EPICEnhanced EPICImageType = "enhanced"
)

// Valid reports whether the image type is one the upstream serves.
func (t EPICImageType) Valid() bool {
	return t == EPICNatural || t == EPICEnhanced
}

// EPICImage is one full-disc Earth image from the DSCOVR EPIC camera.
type EPICImage struct {
	Identifier string `json:"identifier"`
	Image      string `json:"image"`
	Caption    string `json:"caption"`
	Date       string `json:"date"`
	Centroid   struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"centroid_coordinates"`
}

// EPICRequest selects the pipeline and optionally a date (YYYY-MM-DD). An
// empty date returns the most recent available imagery.
type EPICRequest struct {
	Type EPICImageType
	Date string
}

// EPICImages lists available Earth imagery for a pipeline and date.
func (c *Client) EPICImages(ctx context.Context, req EPICRequest) ([]EPICImage, error) {
	imageType := req.Type
	if imageType == "" {
		imageType = EPICNatural
	}
	if !imageType.Valid() {
		return nil, fmt.Errorf("unknown EPIC image type %q", imageType)
	}

	path := fmt.Sprintf("/EPIC/api/%s", imageType)
	if req.Date != "" {
		path = fmt.Sprintf("/EPIC/api/%s/date/%s", imageType, url.PathEscape(req.Date))
	}

	notFound := fmt.Sprintf("no %s Earth imagery available", imageType)
	if req.Date != "" {
		notFound = fmt.Sprintf("no %s Earth imagery available for %s", imageType, req.Date)
	}

	body, err := c.doRequest(ctx, path, nil, errorText{
		notFound:   notFound,
		badRequest: fmt.Sprintf("invalid EPIC date %q, expected YYYY-MM-DD", req.Date),
	})
	if err != nil {
		return nil, err
	}

	var images []EPICImage
	if err := json.Unmarshal(body, &images); err != nil {
		return nil, fmt.Errorf("failed to parse EPIC response: %w", err)
	}
	return images, nil
}

// epicDate tolerates both entry shapes the /all endpoint has served over
// time: a bare "YYYY-MM-DD" string and a {"date": "..."} object.
type epicDate struct {
	value string
}

func (d *epicDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.value = s
		return nil
	}
	var obj struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.value = obj.Date
	return nil
}

// EPICAvailableDates lists every date with imagery for a pipeline, newest
// first as served by the upstream. Timestamps are trimmed to YYYY-MM-DD.
func (c *Client) EPICAvailableDates(ctx context.Context, imageType EPICImageType) ([]string, error) {
	if imageType == "" {
		imageType = EPICNatural
	}
	if !imageType.Valid() {
		return nil, fmt.Errorf("unknown EPIC image type %q", imageType)
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/EPIC/api/%s/all", imageType), nil, errorText{
		notFound:   fmt.Sprintf("no available dates for %s Earth imagery", imageType),
		badRequest: fmt.Sprintf("invalid EPIC date index request for type %q", imageType),
	})
	if err != nil {
		return nil, err
	}

	var entries []epicDate
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse EPIC date index: %w", err)
	}

	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if d := strings.TrimSpace(e.value); d != "" {
			if len(d) > 10 {
				d = d[:10]
			}
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// EPICImageURL builds the archive URL for a full-resolution EPIC image. The
// date must be YYYY-MM-DD; the archive stores images under YYYY/MM/DD, and
// that reformatting is a contract with the upstream storage layout. No
// network I/O happens here.
func EPICImageURL(imageName, date string, imageType EPICImageType, apiKey string) string {
	datePath := strings.ReplaceAll(date, "-", "/")
	return fmt.Sprintf("%s/EPIC/archive/%s/%s/png/%s.png?api_key=%s",
		DefaultBaseURL, imageType, datePath, imageName, url.QueryEscape(apiKey))
}
