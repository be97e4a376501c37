// Package filter evaluates user-supplied expressions against asteroid close
// approaches from the NeoWs feed, using the expr language.
//
// Expressions see one approach at a time as a flat environment:
//
//	hazardous && diameter_max > 150
//	miss_lunar < 10 || velocity_kph > 50000
//	date == "2024-03-05" && magnitude < 22
package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/astrodash/astrodash/nasa"
)

// Approach is the flattened view of one close approach of one near-Earth
// object, the unit filter expressions evaluate against.
type Approach struct {
	Name        string
	Date        string
	Hazardous   bool
	DiameterMin float64 // meters
	DiameterMax float64 // meters
	VelocityKPH float64
	MissKM      float64
	MissLunar   float64
	Magnitude   float64
	JplURL      string
}

// Flatten expands a NeoWs feed into one Approach per close-approach record,
// sorted by date then name for stable output.
func Flatten(feed *nasa.NeoFeed) []Approach {
	var approaches []Approach
	for _, objects := range feed.NearEarthObjects {
		for _, obj := range objects {
			for _, ca := range obj.CloseApproachData {
				approaches = append(approaches, Approach{
					Name:        strings.Trim(obj.Name, "()"),
					Date:        ca.Date,
					Hazardous:   obj.IsPotentiallyHazardous,
					DiameterMin: obj.EstimatedDiameter.Meters.Min,
					DiameterMax: obj.EstimatedDiameter.Meters.Max,
					VelocityKPH: parseFloat(ca.RelativeVelocity.KilometersPerHour),
					MissKM:      parseFloat(ca.MissDistance.Kilometers),
					MissLunar:   parseFloat(ca.MissDistance.Lunar),
					Magnitude:   obj.AbsoluteMagnitudeH,
					JplURL:      obj.NasaJplURL,
				})
			}
		}
	}

	sort.Slice(approaches, func(i, j int) bool {
		if approaches[i].Date != approaches[j].Date {
			return approaches[i].Date < approaches[j].Date
		}
		return approaches[i].Name < approaches[j].Name
	})
	return approaches
}

// parseFloat tolerates the feed's stringly-typed numerics; bad values become
// zero rather than failing the whole listing.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Filter is a compiled approach filter.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a Filter. The expression must evaluate
// to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(Approach{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// Match evaluates the filter against one approach.
func (f *Filter) Match(a Approach) (bool, error) {
	result, err := expr.Run(f.program, environment(a))
	if err != nil {
		return false, fmt.Errorf("filter %q failed: %w", f.expression, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the approaches matching the filter.
func (f *Filter) Apply(approaches []Approach) ([]Approach, error) {
	matched := make([]Approach, 0, len(approaches))
	for _, a := range approaches {
		ok, err := f.Match(a)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// environment builds the expression environment for one approach.
func environment(a Approach) map[string]any {
	return map[string]any{
		"name":         a.Name,
		"date":         a.Date,
		"hazardous":    a.Hazardous,
		"diameter_min": a.DiameterMin,
		"diameter_max": a.DiameterMax,
		"velocity_kph": a.VelocityKPH,
		"miss_km":      a.MissKM,
		"miss_lunar":   a.MissLunar,
		"magnitude":    a.Magnitude,
	}
}
