package service

import (
	"context"
	"errors"
	"fmt"

	"cemetery/internal/geo"
	"cemetery/internal/model"
)

// ErrInvalidBoundary is returned for boundaries that cannot be stored
var ErrInvalidBoundary = errors.New("invalid boundary")

// PlotRepository is the storage a PlotService needs
type PlotRepository interface {
	UpdatePlotBoundary(ctx context.Context, plotID int64, boundary geo.Polygon, center geo.Point) (*model.Plot, error)
}

// PlotService manages drawn plot boundaries
type PlotService struct {
	repo PlotRepository
}

// NewPlotService creates a plot service
func NewPlotService(repo PlotRepository) *PlotService {
	return &PlotService{repo: repo}
}

// UpdateBoundary validates boundary and stores it with its centroid
func (s *PlotService) UpdateBoundary(ctx context.Context, plotID int64, boundary geo.Polygon) (*model.Plot, error) {
	if err := boundary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoundary, err)
	}
	return s.repo.UpdatePlotBoundary(ctx, plotID, boundary, geo.Centroid(boundary))
}
