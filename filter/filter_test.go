package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodash/astrodash/nasa"
)

func testFeed(t *testing.T) *nasa.NeoFeed {
	t.Helper()
	const raw = `{
		"element_count": 2,
		"near_earth_objects": {
			"2024-03-06": [{
				"id": "2",
				"name": "(2020 QX)",
				"absolute_magnitude_h": 25.1,
				"is_potentially_hazardous_asteroid": false,
				"estimated_diameter": {"meters": {"estimated_diameter_min": 20, "estimated_diameter_max": 45}},
				"close_approach_data": [{
					"close_approach_date": "2024-03-06",
					"relative_velocity": {"kilometers_per_hour": "25000"},
					"miss_distance": {"kilometers": "1500000", "lunar": "3.9"},
					"orbiting_body": "Earth"
				}]
			}],
			"2024-03-05": [{
				"id": "1",
				"name": "(2010 PK9)",
				"absolute_magnitude_h": 21.8,
				"is_potentially_hazardous_asteroid": true,
				"estimated_diameter": {"meters": {"estimated_diameter_min": 110, "estimated_diameter_max": 248}},
				"close_approach_data": [{
					"close_approach_date": "2024-03-05",
					"relative_velocity": {"kilometers_per_hour": "48312.5"},
					"miss_distance": {"kilometers": "4567890", "lunar": "11.9"},
					"orbiting_body": "Earth"
				}]
			}]
		}
	}`

	var feed nasa.NeoFeed
	require.NoError(t, json.Unmarshal([]byte(raw), &feed))
	return &feed
}

func TestFlatten(t *testing.T) {
	approaches := Flatten(testFeed(t))
	require.Len(t, approaches, 2)

	// Sorted by date regardless of map iteration order.
	assert.Equal(t, "2024-03-05", approaches[0].Date)
	assert.Equal(t, "2024-03-06", approaches[1].Date)

	first := approaches[0]
	assert.Equal(t, "2010 PK9", first.Name, "parenthesis wrapping is stripped")
	assert.True(t, first.Hazardous)
	assert.InDelta(t, 248, first.DiameterMax, 0.001)
	assert.InDelta(t, 48312.5, first.VelocityKPH, 0.001)
	assert.InDelta(t, 11.9, first.MissLunar, 0.001)
}

func TestFilterMatching(t *testing.T) {
	approaches := Flatten(testFeed(t))

	tests := []struct {
		name       string
		expression string
		wantNames  []string
	}{
		{"hazardous only", "hazardous", []string{"2010 PK9"}},
		{"close approaches", "miss_lunar < 10", []string{"2020 QX"}},
		{"size and speed", "diameter_max > 100 && velocity_kph > 40000", []string{"2010 PK9"}},
		{"nothing matches", `name == "Apophis"`, nil},
		{"everything matches", "magnitude > 0", []string{"2010 PK9", "2020 QX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Apply(approaches)
			require.NoError(t, err)

			var names []string
			for _, a := range matched {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"syntax error", "hazardous &&"},
		{"unknown field", "mass > 10"},
		{"non-boolean result", "diameter_max + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			assert.Error(t, err)
		})
	}
}

func TestParseFloatTolerant(t *testing.T) {
	assert.Equal(t, 0.0, parseFloat("not a number"))
	assert.Equal(t, 12.5, parseFloat("12.5"))
}
