// Package geo holds the planar polygon helpers behind the plot map editor.
//
// Latitude/longitude are treated as a flat plane for centroids and rotation.
// Cemetery polygons span tens of meters, and stored plot centers were computed
// this way, so switching to spherical math would move existing data.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by Distance
	EarthRadiusMeters = 6371000.0

	// MetersPerDegreeLat approximates the length of one degree of latitude
	MetersPerDegreeLat = 111320.0
)

// Point is a [latitude, longitude] pair in degrees
type Point struct {
	Lat float64
	Lng float64
}

// MarshalJSON encodes the point as a [lat, lng] tuple, the shape Leaflet uses
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}

// UnmarshalJSON decodes a [lat, lng] tuple
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [lat, lng] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have exactly 2 coordinates, got %d", len(pair))
	}
	p.Lat, p.Lng = pair[0], pair[1]
	return nil
}

// Centroid returns the arithmetic mean of the latitudes and of the longitudes.
// points must be non-empty; an empty slice yields NaN coordinates.
func Centroid(points []Point) Point {
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: sumLat / n, Lng: sumLng / n}
}

// Rotate rotates point around pivot by angleDegrees (counter-clockwise),
// using longitude as x and latitude as y. Any angle is accepted.
func Rotate(pivot, point Point, angleDegrees float64) Point {
	theta := angleDegrees * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	dx := point.Lng - pivot.Lng
	dy := point.Lat - pivot.Lat

	return Point{
		Lat: pivot.Lat + dx*sin + dy*cos,
		Lng: pivot.Lng + dx*cos - dy*sin,
	}
}

// Distance returns the haversine distance between a and b in meters
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	x := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
