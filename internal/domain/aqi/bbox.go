package aqi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// DefaultHalfWidth is the margin in degrees around the requested coordinate.
const DefaultHalfWidth = 0.1

// BoundingBox is a lon/lat rectangle used to query observations.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// NewBoundingBox derives [lon-w, lat-w, lon+w, lat+w] around a coordinate.
// Edges are clamped to the valid coordinate ranges, so a box near a pole or
// the antimeridian stops at the boundary instead of wrapping.
func NewBoundingBox(lat, lon, halfWidth float64) BoundingBox {
	return BoundingBox{
		MinLon: clamp(lon-halfWidth, -180, 180),
		MinLat: clamp(lat-halfWidth, -90, 90),
		MaxLon: clamp(lon+halfWidth, -180, 180),
		MaxLat: clamp(lat+halfWidth, -90, 90),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Center returns the midpoint as (lat, lon).
func (b BoundingBox) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Contains reports whether the coordinate falls inside the box, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Array returns the box in minLon, minLat, maxLon, maxLat order.
func (b BoundingBox) Array() [4]float64 {
	return [4]float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// String formats the box the way upstream query strings expect it.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// MarshalJSON encodes the box as a four element array.
func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Array())
}

// CacheKey identifies the rating of this box on a date.
func (b BoundingBox) CacheKey(date string) string {
	return b.String() + "@" + date
}

// ValidateCoordinates ensures a coordinate is well formed.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errors.New("latitude must be a finite number")
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errors.New("longitude must be a finite number")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be within [-90, 90], got %g", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be within [-180, 180], got %g", lon)
	}
	return nil
}

// HighestAQI returns the largest AQI in the set, the EPA convention for
// reporting a single index over several pollutants or stations.
func HighestAQI(observations []Observation) int {
	highest := 0
	for _, obs := range observations {
		if obs.AQI > highest {
			highest = obs.AQI
		}
	}
	return highest
}
