package handler

import (
	"context"
	"errors"
	"net/http"

	"cemetery/internal/geo"
	"cemetery/internal/model"
	"cemetery/internal/repository"
	"cemetery/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BoundaryUpdater stores plot boundaries
type BoundaryUpdater interface {
	UpdateBoundary(ctx context.Context, plotID int64, boundary geo.Polygon) (*model.Plot, error)
}

// PlotHandler handles plot HTTP requests
type PlotHandler struct {
	plotService BoundaryUpdater
	logger      *zap.Logger
}

// NewPlotHandler creates a new plot handler
func NewPlotHandler(plotService BoundaryUpdater, logger *zap.Logger) *PlotHandler {
	return &PlotHandler{plotService: plotService, logger: logger}
}

// UpdateBoundary handles PUT /api/v1/plots/:id/boundary
func (h *PlotHandler) UpdateBoundary(c *gin.Context) {
	plotID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plot ID"})
		return
	}

	var req model.BoundaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	plot, err := h.plotService.UpdateBoundary(c.Request.Context(), plotID, req.Boundary)
	switch {
	case errors.Is(err, service.ErrInvalidBoundary):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	case err != nil:
		h.logger.Error("failed to update plot boundary", zap.Int64("plot_id", plotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plot boundary"})
		return
	}

	c.JSON(http.StatusOK, plot)
}
