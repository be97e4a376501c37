package nasa

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEPICImageURL(t *testing.T) {
	url := EPICImageURL("img123", "2024-03-05", EPICNatural, "KEY")

	assert.Contains(t, url, "/2024/03/05/", "date must be reformatted to a slash path")
	assert.Contains(t, url, "api_key=KEY")
	assert.Equal(t,
		"https://api.nasa.gov/EPIC/archive/natural/2024/03/05/png/img123.png?api_key=KEY",
		url)
}

func TestEPICImageURLEscapesKey(t *testing.T) {
	url := EPICImageURL("img", "2024-01-02", EPICEnhanced, "a b&c")
	assert.Contains(t, url, "/EPIC/archive/enhanced/2024/01/02/")
	assert.Contains(t, url, "api_key=a+b%26c")
}

func TestEPICImagesPaths(t *testing.T) {
	tests := []struct {
		name     string
		req      EPICRequest
		wantPath string
	}{
		{"most recent natural", EPICRequest{}, "/EPIC/api/natural"},
		{"enhanced by date", EPICRequest{Type: EPICEnhanced, Date: "2024-03-05"}, "/EPIC/api/enhanced/date/2024-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.Write([]byte(`[{"identifier":"20240305003633","image":"epic_1b_20240305003633","date":"2024-03-05 00:31:45"}]`))
			})

			epicImages, err := client.EPICImages(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			require.Len(t, epicImages, 1)
			assert.Equal(t, "epic_1b_20240305003633", epicImages[0].Image)
		})
	}
}

func TestEPICImagesRejectsUnknownType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for an unknown type")
	})

	_, err := client.EPICImages(context.Background(), EPICRequest{Type: "infrared"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infrared")
}

func TestEPICAvailableDatesToleratesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object entries", `[{"date":"2024-03-05 00:31:45"},{"date":"2024-03-04"}]`},
		{"string entries", `["2024-03-05","2024-03-04"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/EPIC/api/natural/all", r.URL.Path)
				w.Write([]byte(tt.body))
			})

			dates, err := client.EPICAvailableDates(context.Background(), EPICNatural)
			require.NoError(t, err)
			assert.Equal(t, []string{"2024-03-05", "2024-03-04"}, dates)
		})
	}
}
