package geo

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrTooFewPoints is returned when a polygon has fewer than three vertices
var ErrTooFewPoints = errors.New("polygon needs at least 3 points")

// Polygon is an implicitly closed ring: the first point is not repeated at the end
type Polygon []Point

// Validate checks that the polygon has at least three finite vertices
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return ErrTooFewPoints
	}
	for i, pt := range p {
		if math.IsNaN(pt.Lat) || math.IsNaN(pt.Lng) || math.IsInf(pt.Lat, 0) || math.IsInf(pt.Lng, 0) {
			return fmt.Errorf("point %d is not finite", i)
		}
		if pt.Lat < -90 || pt.Lat > 90 || pt.Lng < -180 || pt.Lng > 180 {
			return fmt.Errorf("point %d out of range: [%f, %f]", i, pt.Lat, pt.Lng)
		}
	}
	return nil
}

// Value implements driver.Valuer interface
func (p Polygon) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface
func (p *Polygon) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into Polygon", value)
	}
}

// EdgeLengths returns the length in meters of every edge, including the
// closing edge from the last point back to the first
func EdgeLengths(p Polygon) []float64 {
	if len(p) < 2 {
		return []float64{}
	}
	lengths := make([]float64, len(p))
	for i := range p {
		lengths[i] = Distance(p[i], p[(i+1)%len(p)])
	}
	return lengths
}

// Perimeter returns the sum of EdgeLengths
func Perimeter(p Polygon) float64 {
	total := 0.0
	for _, l := range EdgeLengths(p) {
		total += l
	}
	return total
}

// Bounds is an axis-aligned bounding box used to frame the initial map view
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsOf returns the bounding box of a non-empty set of points
func BoundsOf(points []Point) Bounds {
	b := Bounds{South: math.Inf(1), West: math.Inf(1), North: math.Inf(-1), East: math.Inf(-1)}
	for _, pt := range points {
		b.South = math.Min(b.South, pt.Lat)
		b.North = math.Max(b.North, pt.Lat)
		b.West = math.Min(b.West, pt.Lng)
		b.East = math.Max(b.East, pt.Lng)
	}
	return b
}

// RectangleTemplate builds a fixed-footprint plot of widthMeters (east-west)
// by lengthMeters (north-south) centered on center, rotated by angleDegrees.
// Vertices run south-west, south-east, north-east, north-west before rotation.
func RectangleTemplate(center Point, widthMeters, lengthMeters, angleDegrees float64) Polygon {
	halfLat := (lengthMeters / 2) / MetersPerDegreeLat
	halfLng := (widthMeters / 2) / (MetersPerDegreeLat * math.Cos(toRadians(center.Lat)))

	corners := []Point{
		{Lat: center.Lat - halfLat, Lng: center.Lng - halfLng},
		{Lat: center.Lat - halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng - halfLng},
	}

	out := make(Polygon, len(corners))
	for i, c := range corners {
		out[i] = Rotate(center, c, angleDegrees)
	}
	return out
}
