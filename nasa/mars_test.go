package nasa

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodash/astrodash/apierror"
)

func TestRoverPhotosParameterShaping(t *testing.T) {
	var path string
	var query map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		w.Write([]byte(`{"photos": []}`))
	})

	sol := 1000
	photos, err := client.RoverPhotos(context.Background(), RoverPhotosRequest{
		Rover:  "curiosity",
		Sol:    &sol,
		Camera: "NAVCAM",
	})
	require.NoError(t, err)

	assert.Equal(t, "/mars-photos/api/v1/rovers/curiosity/photos", path)
	assert.Equal(t, []string{"1000"}, query["sol"])
	assert.Equal(t, []string{"navcam"}, query["camera"], "camera must be lowercased for the upstream")
	assert.Equal(t, []string{"1"}, query["page"], "page defaults to 1")
	assert.NotContains(t, query, "earth_date")

	// An empty photo array is a successful empty result, not an error.
	assert.Empty(t, photos)
}

func TestRoverPhotosSolZeroIsSent(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"photos": []}`))
	})

	sol := 0
	_, err := client.RoverPhotos(context.Background(), RoverPhotosRequest{Rover: "spirit", Sol: &sol})
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, query["sol"], "sol 0 is the landing sol and must be sent")
}

func TestRoverPhotosRequiresRover(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without a rover")
	})

	_, err := client.RoverPhotos(context.Background(), RoverPhotosRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rover name is required")
}

func TestRoverPhotosParsing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos": [{
			"id": 102693,
			"sol": 1000,
			"img_src": "http://mars.jpl.nasa.gov/msl-raw-images/x.JPG",
			"earth_date": "2015-05-30",
			"camera": {"name": "FHAZ", "full_name": "Front Hazard Avoidance Camera"},
			"rover": {"name": "Curiosity", "status": "active"}
		}]}`))
	})

	photos, err := client.RoverPhotos(context.Background(), RoverPhotosRequest{Rover: "curiosity"})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, int64(102693), photos[0].ID)
	assert.Equal(t, "FHAZ", photos[0].Camera.Name)
	assert.Equal(t, "2015-05-30", photos[0].EarthDate)
}

func TestRoverManifestUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mars-photos/api/v1/manifests/curiosity", r.URL.Path)
		w.Write([]byte(`{"photo_manifest": {
			"name": "Curiosity",
			"landing_date": "2012-08-06",
			"launch_date": "2011-11-26",
			"status": "active",
			"max_sol": 4100,
			"max_date": "2024-02-19",
			"total_photos": 695670
		}}`))
	})

	manifest, err := client.RoverManifest(context.Background(), "Curiosity")
	require.NoError(t, err)
	assert.Equal(t, "Curiosity", manifest.Name)
	assert.Equal(t, 4100, manifest.MaxSol)
	assert.Equal(t, 695670, manifest.TotalPhotos)
}

func TestRoverNotFoundNamesTheRover(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.RoverManifest(context.Background(), "sojourner")
	require.Error(t, err)
	assert.True(t, apierror.IsNotFound(err))
	assert.Contains(t, err.Error(), "sojourner")
}
