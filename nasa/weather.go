package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// SolWeather is one Martian sol of InSight weather readings. Sensor blocks
// are pointers because the lander frequently reports partial sols.
type SolWeather struct {
	AT       *SensorReading `json:"AT"`  // atmospheric temperature, °C
	PRE      *SensorReading `json:"PRE"` // pressure, Pa
	HWS      *SensorReading `json:"HWS"` // horizontal wind speed, m/s
	Season   string         `json:"Season"`
	FirstUTC string         `json:"First_UTC"`
	LastUTC  string         `json:"Last_UTC"`
}

// SensorReading is an averaged sensor block.
type SensorReading struct {
	Average float64 `json:"av"`
	Min     float64 `json:"mn"`
	Max     float64 `json:"mx"`
	Count   int     `json:"ct"`
}

// InsightWeather is the InSight Mars weather feed. The upstream mixes sol
// entries and metadata at the top level of one JSON object, keyed by sol
// number, so decoding goes through an intermediate raw map.
type InsightWeather struct {
	SolKeys []string
	Sols    map[string]SolWeather
}

// UnmarshalJSON splits the sol_keys index from the per-sol entries.
func (w *InsightWeather) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if keys, ok := raw["sol_keys"]; ok {
		if err := json.Unmarshal(keys, &w.SolKeys); err != nil {
			return fmt.Errorf("invalid sol_keys: %w", err)
		}
	}

	w.Sols = make(map[string]SolWeather, len(w.SolKeys))
	for _, key := range w.SolKeys {
		entry, ok := raw[key]
		if !ok {
			continue
		}
		var sol SolWeather
		if err := json.Unmarshal(entry, &sol); err != nil {
			return fmt.Errorf("invalid weather entry for sol %s: %w", key, err)
		}
		w.Sols[key] = sol
	}
	return nil
}

// InsightWeather fetches the latest Mars weather from the InSight lander
// feed. The lander's sensors have been degrading since 2020, so sols with no
// usable readings are normal.
func (c *Client) InsightWeather(ctx context.Context) (*InsightWeather, error) {
	params := url.Values{}
	params.Set("feedtype", "json")
	params.Set("ver", "1.0")

	body, err := c.doRequest(ctx, "/insight_weather/", params, errorText{
		notFound:   "Mars weather data not found: the InSight feed may have been retired",
		badRequest: "invalid Mars weather request: the feedtype and ver parameters are fixed by the upstream service",
	})
	if err != nil {
		return nil, err
	}

	var weather InsightWeather
	if err := json.Unmarshal(body, &weather); err != nil {
		return nil, fmt.Errorf("failed to parse Mars weather response: %w", err)
	}
	return &weather, nil
}
