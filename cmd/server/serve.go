package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cemetery/internal/config"
	"cemetery/internal/handler"
	"cemetery/internal/middleware"
	"cemetery/internal/repository"
	"cemetery/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		return serve(cfg, log)
	},
}

func serve(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting cemetery search",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	gin.SetMode(cfg.Server.GinMode)

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()
	log.Info("connected to PostgreSQL")

	var (
		rdb     *redis.Client
		cache   service.IntentCache
		limiter middleware.RateLimiter
	)
	if cfg.Redis.Address != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = repository.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()

		cache = service.NewRedisIntentCache(rdb, time.Duration(cfg.Redis.IntentCacheTTL)*time.Second)
		if cfg.Search.RateLimitPerMinute > 0 {
			limiter = middleware.NewRedisRateLimiter(rdb, cfg.Search.RateLimitPerMinute, time.Minute)
		}
		log.Info("connected to Redis",
			zap.String("address", cfg.Redis.Address),
			zap.Int("rate_limit_per_minute", cfg.Search.RateLimitPerMinute),
		)
	} else {
		log.Warn("REDIS_ADDRESS not set, intent cache and rate limiting disabled")
	}

	var model service.IntentModel
	if cfg.OpenAI.Enabled {
		model = service.NewOpenAIClient(&cfg.OpenAI, log)
		log.Info("OpenAI client initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("chat_model", cfg.OpenAI.ChatModel),
			zap.Float64("chat_temperature", cfg.OpenAI.ChatTemperature),
			zap.Int("chat_max_tokens", cfg.OpenAI.ChatMaxTokens),
		)
	} else {
		log.Warn("OpenAI is disabled, queries use the rule-based parser only")
	}

	apiKeys, err := middleware.ParseAPIKeys(cfg.Security.APIKeys)
	if err != nil {
		return fmt.Errorf("invalid API_KEYS: %w", err)
	}
	keys := middleware.NewKeyStore(apiKeys)
	if keys.Len() == 0 {
		log.Warn("no API keys configured, external endpoints will reject every request")
	}

	intentParser := service.NewIntentParser(model, cache, log)
	searchService := service.NewSearchService(repo, intentParser, cfg.Search.LogSearches, log)
	leaseService := service.NewLeaseService(repo, cfg.Lease.DefaultYears, cfg.Lease.WarnDays, log)

	router := newRouter(routes{
		db:             repo,
		allowedOrigins: cfg.Server.AllowedOrigins,
		keys:           keys,
		limiter:        limiter,
		logger:         log.Named("http"),
		search:         handler.NewSearchHandler(searchService, log),
		geometry:       handler.NewGeometryHandler(),
		plots:          handler.NewPlotHandler(service.NewPlotService(repo), log),
		leases:         handler.NewLeaseHandler(leaseService, log),
		permits:        handler.NewPermitHandler(service.NewPermitService(repo, log), log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	// pending search logs still need the database
	searchService.Wait()
	log.Info("server stopped")
	return nil
}
