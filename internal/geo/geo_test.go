package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestCentroid_Square(t *testing.T) {
	got := Centroid([]Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 2, Lng: 2}, {Lat: 2, Lng: 0}})
	assert.InDelta(t, 1.0, got.Lat, eps)
	assert.InDelta(t, 1.0, got.Lng, eps)
}

func TestCentroid_DoesNotMutateInput(t *testing.T) {
	in := []Point{{Lat: 14.5, Lng: 121.0}, {Lat: 14.6, Lng: 121.1}, {Lat: 14.7, Lng: 121.0}}
	cp := append([]Point(nil), in...)
	_ = Centroid(in)
	assert.Equal(t, cp, in)
}

func TestCentroid_EmptyIsNaN(t *testing.T) {
	got := Centroid(nil)
	assert.True(t, math.IsNaN(got.Lat))
	assert.True(t, math.IsNaN(got.Lng))
}

func TestRotate(t *testing.T) {
	pivot := Point{Lat: 14.5995, Lng: 120.9842}
	point := Point{Lat: 14.6001, Lng: 120.9850}

	t.Run("zero angle is identity", func(t *testing.T) {
		got := Rotate(pivot, point, 0)
		assert.InDelta(t, point.Lat, got.Lat, eps)
		assert.InDelta(t, point.Lng, got.Lng, eps)
	})

	t.Run("inverse rotation restores the point", func(t *testing.T) {
		for _, theta := range []float64{15, 90, -45, 370, 725.5} {
			got := Rotate(pivot, Rotate(pivot, point, theta), -theta)
			assert.InDelta(t, point.Lat, got.Lat, eps, "theta=%v", theta)
			assert.InDelta(t, point.Lng, got.Lng, eps, "theta=%v", theta)
		}
	})

	t.Run("quarter turn counter-clockwise", func(t *testing.T) {
		// one unit east of the pivot ends up one unit north
		got := Rotate(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 1}, 90)
		assert.InDelta(t, 1.0, got.Lat, eps)
		assert.InDelta(t, 0.0, got.Lng, eps)
	})

	t.Run("full turn wraps", func(t *testing.T) {
		a := Rotate(pivot, point, 30)
		b := Rotate(pivot, point, 390)
		assert.InDelta(t, a.Lat, b.Lat, eps)
		assert.InDelta(t, a.Lng, b.Lng, eps)
	})
}

func TestDistance(t *testing.T) {
	a := Point{Lat: 14.5995, Lng: 120.9842}
	b := Point{Lat: 14.6010, Lng: 120.9870}
	c := Point{Lat: 14.5950, Lng: 120.9900}

	assert.Equal(t, 0.0, Distance(a, a))
	assert.InDelta(t, Distance(a, b), Distance(b, a), eps)
	assert.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c))
	assert.Greater(t, Distance(a, b), 0.0)

	// one degree of latitude along a meridian is ~111.2 km on a 6371 km sphere
	oneDegree := Distance(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111194.9, oneDegree, 1.0)
}

func TestPointJSON(t *testing.T) {
	data, err := json.Marshal(Point{Lat: 1.5, Lng: -2.25})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, -2.25]`, string(data))

	var p Point
	require.NoError(t, json.Unmarshal([]byte(`[10, 20]`), &p))
	assert.Equal(t, Point{Lat: 10, Lng: 20}, p)

	assert.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"lat": 1}`), &p))
}
