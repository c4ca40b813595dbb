package handler

import (
	"net/http"

	"cemetery/internal/geo"
	"cemetery/internal/model"

	"github.com/gin-gonic/gin"
)

// GeometryHandler exposes the map editor's polygon helpers
type GeometryHandler struct{}

// NewGeometryHandler creates a new geometry handler
func NewGeometryHandler() *GeometryHandler {
	return &GeometryHandler{}
}

// Centroid handles POST /api/v1/geometry/centroid
func (h *GeometryHandler) Centroid(c *gin.Context) {
	var req model.CentroidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.CentroidResponse{
		Center: geo.Centroid(req.Points),
		Bounds: geo.BoundsOf(req.Points),
	})
}

// Template handles POST /api/v1/geometry/template
func (h *GeometryHandler) Template(c *gin.Context) {
	var req model.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rect := geo.RectangleTemplate(*req.Center, req.WidthMeters, req.LengthMeters, req.AngleDegrees)
	if err := rect.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, measure(rect))
}

// Edges handles POST /api/v1/geometry/edges
func (h *GeometryHandler) Edges(c *gin.Context) {
	var req model.EdgesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := req.Polygon.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid polygon: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, measure(req.Polygon))
}

func measure(p geo.Polygon) model.PolygonMeasurements {
	return model.PolygonMeasurements{
		Polygon:     p,
		EdgeLengths: geo.EdgeLengths(p),
		Perimeter:   geo.Perimeter(p),
	}
}
