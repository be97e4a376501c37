package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// NearEarthObject is one asteroid entry from the NeoWs feed.
type NearEarthObject struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	NasaJplURL         string  `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH float64 `json:"absolute_magnitude_h"`
	EstimatedDiameter  struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	IsPotentiallyHazardous bool `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []struct {
		Date             string `json:"close_approach_date"`
		DateFull         string `json:"close_approach_date_full"`
		RelativeVelocity struct {
			KilometersPerHour string `json:"kilometers_per_hour"`
		} `json:"relative_velocity"`
		MissDistance struct {
			Kilometers string `json:"kilometers"`
			Lunar      string `json:"lunar"`
		} `json:"miss_distance"`
		OrbitingBody string `json:"orbiting_body"`
	} `json:"close_approach_data"`
}

// NeoFeed is the near-Earth-object feed keyed by approach date.
type NeoFeed struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
}

// NeoFeedRequest holds the date window for the NeoWs feed. Both dates are
// required, YYYY-MM-DD; the upstream caps the window at seven days and is
// trusted to reject wider ones.
type NeoFeedRequest struct {
	StartDate string
	EndDate   string
}

// NeoFeed fetches near-Earth objects approaching within the date window.
func (c *Client) NeoFeed(ctx context.Context, req NeoFeedRequest) (*NeoFeed, error) {
	if req.StartDate == "" || req.EndDate == "" {
		return nil, fmt.Errorf("start and end dates are required")
	}

	params := url.Values{}
	params.Set("start_date", req.StartDate)
	params.Set("end_date", req.EndDate)

	body, err := c.doRequest(ctx, "/neo/rest/v1/feed", params, errorText{
		notFound:   fmt.Sprintf("no near-Earth object data for %s to %s", req.StartDate, req.EndDate),
		badRequest: fmt.Sprintf("invalid asteroid feed window %s to %s: dates must be YYYY-MM-DD and span at most 7 days", req.StartDate, req.EndDate),
	})
	if err != nil {
		return nil, err
	}

	var feed NeoFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse asteroid feed response: %w", err)
	}
	return &feed, nil
}
