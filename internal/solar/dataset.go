// Package solar loads the static irradiance reference dataset and resolves
// (orientation, tilt) pairs to unscaled per-kWp hourly generation curves.
package solar

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// orientationToAzimuth maps the 8-point compass to azimuth degrees.
var orientationToAzimuth = map[string]int{
	"N":  0,
	"NE": 45,
	"E":  90,
	"SE": 135,
	"S":  180,
	"SW": 225,
	"W":  270,
	"NW": 315,
}

// Dataset is an irradiance reference keyed location -> azimuth -> tilt,
// holding 8760 per-kWp values in Wh.
type Dataset struct {
	profiles map[string]map[string]map[string][]float64
}

// Load reads a reference dataset from a JSON file.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read solar dataset: %w", err)
	}
	var profiles map[string]map[string]map[string][]float64
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse solar dataset: %w", err)
	}
	return &Dataset{profiles: profiles}, nil
}

// New builds a dataset from an in-memory profile map. Used by tests and
// seeding.
func New(profiles map[string]map[string]map[string][]float64) *Dataset {
	return &Dataset{profiles: profiles}
}

// RoundTilt buckets a tilt angle to the nearest 5 degrees.
func RoundTilt(tilt float64) int {
	return int(math.Round(tilt/5)) * 5
}

// Lookup resolves a raw per-kWp hourly curve for the given location,
// compass orientation and tilt. The boolean is false when any key is
// absent; a miss is an expected condition, not an error.
func (d *Dataset) Lookup(location, orientation string, tilt float64) ([]float64, bool) {
	azimuth, ok := orientationToAzimuth[orientation]
	if !ok {
		return nil, false
	}
	byAzimuth, ok := d.profiles[location]
	if !ok {
		return nil, false
	}
	byTilt, ok := byAzimuth[fmt.Sprintf("azimuth_%d", azimuth)]
	if !ok {
		return nil, false
	}
	arr, ok := byTilt[fmt.Sprintf("tilt_%d", RoundTilt(tilt))]
	if !ok || arr == nil {
		return nil, false
	}
	return arr, true
}
