package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodash/astrodash/apierror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(zerolog.Nop(), WithBaseURL(server.URL))
}

func TestSearchRequiredOnlyQuery(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		query = r.URL.Query()
		w.Write([]byte(`{"collection": {"items": [], "metadata": {"total_hits": 0}}}`))
	})

	_, err := client.Search(context.Background(), SearchRequest{Query: "apollo 11"})
	require.NoError(t, err)

	assert.Equal(t, []string{"apollo 11"}, query["q"])
	assert.Equal(t, []string{"1"}, query["page"])
	assert.NotContains(t, query, "media_type")
	assert.NotContains(t, query, "year_start")
	assert.NotContains(t, query, "year_end")
}

func TestSearchAllFilters(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"collection": {"items": []}}`))
	})

	_, err := client.Search(context.Background(), SearchRequest{
		Query:     "saturn",
		MediaType: "image",
		YearStart: "1979",
		YearEnd:   "1982",
		Page:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"image"}, query["media_type"])
	assert.Equal(t, []string{"1979"}, query["year_start"])
	assert.Equal(t, []string{"1982"}, query["year_end"])
	assert.Equal(t, []string{"3"}, query["page"])
}

func TestSearchRequiresQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without a query")
	})

	_, err := client.Search(context.Background(), SearchRequest{})
	require.Error(t, err)
}

func TestSearchParsing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"collection": {
			"metadata": {"total_hits": 1},
			"items": [{
				"href": "https://images-api.nasa.gov/asset/as11-40-5874",
				"data": [{"nasa_id": "as11-40-5874", "title": "Aldrin on the Moon", "media_type": "image", "date_created": "1969-07-20T00:00:00Z"}],
				"links": [{"href": "https://images-assets.nasa.gov/thumb.jpg", "rel": "preview"}]
			}]
		}}`))
	})

	response, err := client.Search(context.Background(), SearchRequest{Query: "aldrin"})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Collection.Metadata.TotalHits)
	require.Len(t, response.Collection.Items, 1)
	require.Len(t, response.Collection.Items[0].Data, 1)
	assert.Equal(t, "Aldrin on the Moon", response.Collection.Items[0].Data[0].Title)
}

func TestSearchClassification(t *testing.T) {
	tests := []struct {
		status int
		want   apierror.Kind
	}{
		{http.StatusNotFound, apierror.KindNotFound},
		{http.StatusBadRequest, apierror.KindBadRequest},
		{http.StatusTooManyRequests, apierror.KindRateLimited},
		{http.StatusBadGateway, apierror.KindServerError},
		{http.StatusTeapot, apierror.KindUnknown},
	}

	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
		require.Error(t, err)
		assert.Equal(t, tt.want, apierror.KindOf(err), "status %d", tt.status)
	}
}
