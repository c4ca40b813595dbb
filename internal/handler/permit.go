package handler

import (
	"context"
	"errors"
	"net/http"

	"cemetery/internal/middleware"
	"cemetery/internal/model"
	"cemetery/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermitSubmitter stores permit submissions
type PermitSubmitter interface {
	Submit(ctx context.Context, permit *model.PermitSubmission, submittedBy string) error
}

// PermitHandler handles permit webhook requests
type PermitHandler struct {
	permitService PermitSubmitter
	logger        *zap.Logger
}

// NewPermitHandler creates a new permit handler
func NewPermitHandler(permitService PermitSubmitter, logger *zap.Logger) *PermitHandler {
	return &PermitHandler{permitService: permitService, logger: logger}
}

// Submit handles POST /api/v1/external/permits
func (h *PermitHandler) Submit(c *gin.Context) {
	var permit model.PermitSubmission
	if err := c.ShouldBindJSON(&permit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.permitService.Submit(c.Request.Context(), &permit, c.GetString(middleware.ContextKeyAPIKeyName))
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Permit already submitted"})
		return
	case err != nil:
		h.logger.Error("failed to store permit", zap.String("external_id", permit.ExternalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store permit"})
		return
	}

	c.JSON(http.StatusCreated, permit)
}
