package model

import (
	"time"

	"cemetery/internal/geo"
)

// Plot is a grave plot with its drawn boundary
type Plot struct {
	ID         int64       `db:"id" json:"id"`
	CemeteryID int64       `db:"cemetery_id" json:"cemeteryId"`
	PlotNumber string      `db:"plot_number" json:"plotNumber"`
	Boundary   geo.Polygon `db:"boundary" json:"boundary"`
	CenterLat  *float64    `db:"center_lat" json:"centerLat,omitempty"`
	CenterLng  *float64    `db:"center_lng" json:"centerLng,omitempty"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}

// BoundaryRequest is the body of PUT /api/v1/plots/:id/boundary
type BoundaryRequest struct {
	Boundary geo.Polygon `json:"boundary" binding:"required"`
}

// CentroidRequest is the body of POST /api/v1/geometry/centroid
type CentroidRequest struct {
	Points []geo.Point `json:"points" binding:"required,min=1"`
}

// CentroidResponse carries a center point and the bounding box that frames
// the input
type CentroidResponse struct {
	Center geo.Point  `json:"center"`
	Bounds geo.Bounds `json:"bounds"`
}

// TemplateRequest is the body of POST /api/v1/geometry/template
type TemplateRequest struct {
	Center       *geo.Point `json:"center" binding:"required"`
	WidthMeters  float64    `json:"widthMeters" binding:"required,gt=0"`
	LengthMeters float64    `json:"lengthMeters" binding:"required,gt=0"`
	AngleDegrees float64    `json:"angleDegrees"`
}

// EdgesRequest is the body of POST /api/v1/geometry/edges
type EdgesRequest struct {
	Polygon geo.Polygon `json:"polygon" binding:"required"`
}

// PolygonMeasurements describes a polygon's edges in meters
type PolygonMeasurements struct {
	Polygon     geo.Polygon `json:"polygon"`
	EdgeLengths []float64   `json:"edgeLengths"`
	Perimeter   float64     `json:"perimeter"`
}
