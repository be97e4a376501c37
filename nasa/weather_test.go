package nasa

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightWeatherDecoding(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{
			"sol_keys": ["675", "676"],
			"675": {
				"AT": {"av": -62.3, "mn": -96.9, "mx": -15.9, "ct": 177556},
				"PRE": {"av": 750.6, "mn": 722.1, "mx": 768.8, "ct": 887776},
				"Season": "fall",
				"First_UTC": "2020-10-19T18:32:20Z",
				"Last_UTC": "2020-10-20T19:11:55Z"
			},
			"676": {
				"Season": "fall",
				"First_UTC": "2020-10-20T19:11:55Z",
				"Last_UTC": "2020-10-21T19:51:30Z"
			},
			"validity_checks": {"675": {"AT": {"valid": true}}}
		}`))
	})

	weather, err := client.InsightWeather(context.Background())
	require.NoError(t, err)

	// Fixed upstream parameters are always sent.
	assert.Equal(t, []string{"json"}, query["feedtype"])
	assert.Equal(t, []string{"1.0"}, query["ver"])

	assert.Equal(t, []string{"675", "676"}, weather.SolKeys)

	full := weather.Sols["675"]
	require.NotNil(t, full.AT)
	assert.InDelta(t, -62.3, full.AT.Average, 0.001)
	require.NotNil(t, full.PRE)
	assert.Equal(t, "fall", full.Season)

	// Partial sols keep nil sensor blocks instead of zero readings.
	partial := weather.Sols["676"]
	assert.Nil(t, partial.AT)
	assert.Nil(t, partial.PRE)
	assert.Nil(t, partial.HWS)
}
