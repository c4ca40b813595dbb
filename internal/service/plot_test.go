package service

import (
	"context"
	"testing"

	"cemetery/internal/geo"
	"cemetery/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlotRepo struct {
	calls  int
	center geo.Point
}

func (f *fakePlotRepo) UpdatePlotBoundary(ctx context.Context, plotID int64, boundary geo.Polygon, center geo.Point) (*model.Plot, error) {
	f.calls++
	f.center = center
	return &model.Plot{ID: plotID, Boundary: boundary, CenterLat: &center.Lat, CenterLng: &center.Lng}, nil
}

func TestPlotService_UpdateBoundary(t *testing.T) {
	repo := &fakePlotRepo{}
	svc := NewPlotService(repo)

	square := geo.Polygon{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 2, Lng: 2}, {Lat: 2, Lng: 0}}
	plot, err := svc.UpdateBoundary(context.Background(), 7, square)
	require.NoError(t, err)

	assert.Equal(t, geo.Point{Lat: 1, Lng: 1}, repo.center)
	assert.Equal(t, int64(7), plot.ID)
}

func TestPlotService_UpdateBoundary_Invalid(t *testing.T) {
	repo := &fakePlotRepo{}
	svc := NewPlotService(repo)

	_, err := svc.UpdateBoundary(context.Background(), 7, geo.Polygon{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}})
	assert.ErrorIs(t, err, ErrInvalidBoundary)
	assert.ErrorIs(t, err, geo.ErrTooFewPoints)
	assert.Equal(t, 0, repo.calls)
}
