package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RoverPhoto is a single photo taken by a Mars rover camera.
type RoverPhoto struct {
	ID        int64  `json:"id"`
	Sol       int    `json:"sol"`
	ImgSrc    string `json:"img_src"`
	EarthDate string `json:"earth_date"`
	Camera    struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"camera"`
	Rover struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"rover"`
}

// RoverPhotosRequest holds the filters for the rover photo endpoint. Rover is
// required; Sol and EarthDate select the time axis (typically one of the two
// is set); Camera narrows to a single instrument; Page defaults to 1.
type RoverPhotosRequest struct {
	Rover     string
	Sol       *int
	EarthDate string
	Camera    string
	Page      int
}

// RoverPhotos fetches photos for a rover. An empty photo list is a successful
// result, not an error; the upstream returns 200 with an empty array when no
// photos match the filters.
func (c *Client) RoverPhotos(ctx context.Context, req RoverPhotosRequest) ([]RoverPhoto, error) {
	if req.Rover == "" {
		return nil, fmt.Errorf("rover name is required")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if req.Sol != nil {
		params.Set("sol", strconv.Itoa(*req.Sol))
	}
	if req.EarthDate != "" {
		params.Set("earth_date", req.EarthDate)
	}
	if req.Camera != "" {
		// The upstream camera filter is case-sensitive and lowercase.
		params.Set("camera", strings.ToLower(req.Camera))
	}

	path := fmt.Sprintf("/mars-photos/api/v1/rovers/%s/photos", url.PathEscape(strings.ToLower(req.Rover)))

	body, err := c.doRequest(ctx, path, params, errorText{
		notFound:   fmt.Sprintf("no photos found for rover %q with the given filters", req.Rover),
		badRequest: fmt.Sprintf("invalid rover photo query: check the sol, earth_date (YYYY-MM-DD) and camera values for rover %q", req.Rover),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Photos []RoverPhoto `json:"photos"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse rover photos response: %w", err)
	}
	return response.Photos, nil
}

// RoverManifest summarizes a rover's mission and per-sol photo counts.
type RoverManifest struct {
	Name        string `json:"name"`
	LandingDate string `json:"landing_date"`
	LaunchDate  string `json:"launch_date"`
	Status      string `json:"status"`
	MaxSol      int    `json:"max_sol"`
	MaxDate     string `json:"max_date"`
	TotalPhotos int    `json:"total_photos"`
	Photos      []struct {
		Sol         int      `json:"sol"`
		EarthDate   string   `json:"earth_date"`
		TotalPhotos int      `json:"total_photos"`
		Cameras     []string `json:"cameras"`
	} `json:"photos"`
}

// RoverManifest fetches the mission manifest for a rover, unwrapping the
// photo_manifest envelope.
func (c *Client) RoverManifest(ctx context.Context, rover string) (*RoverManifest, error) {
	if rover == "" {
		return nil, fmt.Errorf("rover name is required")
	}

	path := fmt.Sprintf("/mars-photos/api/v1/manifests/%s", url.PathEscape(strings.ToLower(rover)))

	body, err := c.doRequest(ctx, path, nil, errorText{
		notFound:   fmt.Sprintf("no manifest found for rover %q: known rovers are curiosity, opportunity, spirit and perseverance", rover),
		badRequest: fmt.Sprintf("invalid manifest request for rover %q", rover),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		PhotoManifest RoverManifest `json:"photo_manifest"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse rover manifest response: %w", err)
	}
	return &response.PhotoManifest, nil
}
