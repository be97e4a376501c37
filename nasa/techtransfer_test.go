package nasa

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechTransferCollections(t *testing.T) {
	tests := []struct {
		collection TechTransferCollection
		wantPath   string
	}{
		{CollectionPatent, "/techtransfer/patent/"},
		{CollectionPatentIssued, "/techtransfer/patent_issued/"},
		{CollectionSoftware, "/techtransfer/software/"},
		{CollectionSpinoff, "/techtransfer/spinoff/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.collection), func(t *testing.T) {
			var path string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.Write([]byte(`{"results": [], "count": 0, "total": 0}`))
			})

			_, err := client.TechTransfer(context.Background(), TechTransferRequest{Collection: tt.collection})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestTechTransferDefaultsAndOptionals(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"results": []}`))
	})

	_, err := client.TechTransfer(context.Background(), TechTransferRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, query["page"])
	assert.NotContains(t, query, "query", "empty query must be omitted")
}

func TestTechTransferRejectsUnknownCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for an unknown collection")
	})

	_, err := client.TechTransfer(context.Background(), TechTransferRequest{Collection: "blueprints"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blueprints")
}

func TestTechTransferRecordsFlattening(t *testing.T) {
	response := &TechTransferResponse{
		Results: [][]any{
			{"id-1", "LEW-TOPS-1", "<b>Engine</b> Coating", "A <span class=\"hl\">coating</span> for engines.", "extra"},
			{"id-2", "MSC-2", "Short row"},
		},
	}

	records := response.Records()
	require.Len(t, records, 2)

	assert.Equal(t, "Engine Coating", records[0].Title, "highlight markup is stripped")
	assert.Equal(t, "A coating for engines.", records[0].Description)
	assert.Equal(t, "LEW-TOPS-1", records[0].CaseNumber)

	// Rows shorter than the expected layout yield empty fields, not panics.
	assert.Equal(t, "Short row", records[1].Title)
	assert.Equal(t, "", records[1].Description)
}
