package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"cemetery/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Searcher runs person searches
type Searcher interface {
	Search(ctx context.Context, query, cemeteryFilter string) (*model.SearchResponse, error)
}

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService Searcher
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService Searcher, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles GET /api/v1/search?q=...&cemetery=...
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	cemetery := strings.TrimSpace(c.Query("cemetery"))
	if cemetery != "" {
		if _, ok := parseID(cemetery); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cemetery ID"})
			return
		}
	}

	response, err := h.searchService.Search(c.Request.Context(), query, cemetery)
	if err != nil {
		h.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseID parses a positive integer identifier
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
