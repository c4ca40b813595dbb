package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cemetery/internal/handler"
	"cemetery/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	PermissionPermitsWrite = "permits:write"
	PermissionLeasesRead   = "leases:read"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// routes carries everything the HTTP router is assembled from. Limiter may
// be nil, which leaves search unthrottled.
type routes struct {
	db             Pinger
	allowedOrigins string
	keys           *middleware.KeyStore
	limiter        middleware.RateLimiter
	logger         *zap.Logger

	search   *handler.SearchHandler
	geometry *handler.GeometryHandler
	plots    *handler.PlotHandler
	leases   *handler.LeaseHandler
	permits  *handler.PermitHandler
}

func newRouter(rt routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(rt.logger))
	router.Use(cors.New(corsConfig(rt.allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := rt.db.Ping(ctx); err != nil {
			rt.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "cemetery-search",
				"error":   "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "cemetery-search",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		searchChain := []gin.HandlerFunc{}
		if rt.limiter != nil {
			searchChain = append(searchChain, middleware.RateLimit(rt.limiter, rt.logger))
		}
		searchChain = append(searchChain, rt.search.Search)
		apiV1.GET("/search", searchChain...)

		apiV1.POST("/geometry/centroid", rt.geometry.Centroid)
		apiV1.POST("/geometry/template", rt.geometry.Template)
		apiV1.POST("/geometry/edges", rt.geometry.Edges)

		apiV1.PUT("/plots/:id/boundary", rt.plots.UpdateBoundary)

		apiV1.GET("/leases/expiring", rt.leases.ListExpiring)
		apiV1.POST("/burials/:id/renew", rt.leases.Renew)

		external := apiV1.Group("/external")
		external.POST("/permits",
			middleware.RequireAPIKey(rt.keys, PermissionPermitsWrite, rt.logger),
			rt.permits.Submit)
		external.GET("/leases/expiring",
			middleware.RequireAPIKey(rt.keys, PermissionLeasesRead, rt.logger),
			rt.leases.ListExpiring)
	}

	return router
}

func corsConfig(allowedOrigins string) cors.Config {
	cfg := cors.DefaultConfig()

	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	return cfg
}
