package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cemetery/internal/model"
	"cemetery/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWindowDays bounds the expiring-lease look-ahead
const maxWindowDays = 3650

// LeaseManager lists and renews burial leases
type LeaseManager interface {
	ListExpiring(ctx context.Context, withinDays int, cemeteryID *int64) ([]model.BurialLease, error)
	Renew(ctx context.Context, burialID int64, renewedAt *time.Time) (*model.BurialLease, error)
	WarnDays() int
}

// LeaseHandler handles burial lease HTTP requests
type LeaseHandler struct {
	leaseService LeaseManager
	logger       *zap.Logger
}

// NewLeaseHandler creates a new lease handler
func NewLeaseHandler(leaseService LeaseManager, logger *zap.Logger) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService, logger: logger}
}

// ListExpiring handles GET /api/v1/leases/expiring?days=30&cemetery=3
func (h *LeaseHandler) ListExpiring(c *gin.Context) {
	days := h.leaseService.WarnDays()
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > maxWindowDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 0 and 3650"})
			return
		}
		days = n
	}

	var cemeteryID *int64
	if s := c.Query("cemetery"); s != "" {
		id, ok := parseID(s)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cemetery ID"})
			return
		}
		cemeteryID = &id
	}

	leases, err := h.leaseService.ListExpiring(c.Request.Context(), days, cemeteryID)
	if err != nil {
		h.logger.Error("failed to list expiring leases", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leases"})
		return
	}

	c.JSON(http.StatusOK, model.ExpiringLeasesResponse{
		WithinDays: days,
		Leases:     leases,
		Total:      len(leases),
	})
}

// Renew handles POST /api/v1/burials/:id/renew
func (h *LeaseHandler) Renew(c *gin.Context) {
	burialID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid burial ID"})
		return
	}

	var req model.RenewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	var renewedAt *time.Time
	if req.RenewedAt != "" {
		t, err := time.Parse("2006-01-02", req.RenewedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "renewedAt must be YYYY-MM-DD"})
			return
		}
		renewedAt = &t
	}

	lease, err := h.leaseService.Renew(c.Request.Context(), burialID, renewedAt)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Burial not found"})
		return
	case err != nil:
		h.logger.Error("failed to renew burial", zap.Int64("burial_id", burialID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to renew burial"})
		return
	}

	c.JSON(http.StatusOK, lease)
}
