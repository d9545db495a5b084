package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/clarionhq/feedback-engine/internal/cache"
	"github.com/clarionhq/feedback-engine/internal/database"
	"github.com/clarionhq/feedback-engine/internal/errors"
	"github.com/clarionhq/feedback-engine/internal/experiment"
	"github.com/clarionhq/feedback-engine/internal/history"
	"github.com/clarionhq/feedback-engine/internal/monitoring"
	"github.com/clarionhq/feedback-engine/internal/ratelimit"
	"github.com/clarionhq/feedback-engine/internal/scoring"
	"github.com/clarionhq/feedback-engine/internal/security"
	"github.com/clarionhq/feedback-engine/internal/types"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	port := getEnvOrDefault("PORT", "8080")
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	redisAddr := getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvIntOrDefault("REDIS_DB", 0)
	cacheTTL := time.Duration(getEnvIntOrDefault("CACHE_TTL_MINUTES", 15)) * time.Minute
	allowedOrigins := getEnvOrDefault("ALLOWED_ORIGINS", "*")

	experimentCfg := experiment.DefaultConfig()
	if method := os.Getenv("EXPERIMENT_METHOD"); method != "" {
		experimentCfg.Method = experiment.Method(method)
	}
	experimentCfg.MinSampleSize = getEnvIntOrDefault("EXPERIMENT_MIN_SAMPLE", experimentCfg.MinSampleSize)
	experimentCfg.TargetSampleSize = getEnvIntOrDefault("EXPERIMENT_TARGET_SAMPLE", experimentCfg.TargetSampleSize)

	// Initialize database and history service
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer errors.SafeClose(db, "database")

	repo := database.NewRepository(db)
	historyService := history.NewService(repo)

	// Computation cores
	scorer := scoring.NewScorer(scoring.DefaultThresholds())

	r := gin.New()

	// Monitoring
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// CORS
	corsConfig := cors.DefaultConfig()
	if allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	// Request hardening
	hardening := security.NewMiddleware(security.DefaultConfig())
	r.Use(hardening.Headers)
	r.Use(hardening.RequestTimeout)
	r.Use(hardening.ValidateContentType)
	r.Use(hardening.BodySizeLimit)

	// Rate limiting: Redis-backed with in-memory fallback
	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, redisDB)
	if err != nil {
		slog.Warn("Redis client initialization failed, continuing with fallback", "error", err)
	}
	rateLimiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)
	r.Use(rateLimiter.IPRateLimitMiddleware())

	// Response cache for the deterministic computation endpoints
	appCache := cache.NewCache(cacheTTL)
	r.Use(appCache.Middleware(appMetrics, "/score", "/experiments/results"))

	scoreLimit := getEnvIntOrDefault("SCORE_RATE_LIMIT", 60)
	experimentLimit := getEnvIntOrDefault("EXPERIMENT_RATE_LIMIT", 60)

	r.POST("/score",
		rateLimiter.EndpointRateLimitMiddleware("/score", scoreLimit),
		func(c *gin.Context) {
			start := time.Now()

			var req types.ScoreRequest
			if err := c.BindJSON(&req); err != nil {
				appErr := errors.ToAppError(err)
				errors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}

			result, err := scorer.CalculateScore(req.Input())
			if err != nil {
				appErr := errors.ToAppError(err)
				errors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}

			appMetrics.IncrementScoreCalls()
			appLogger.ScoringLogger(req.Snapshot.ID, result.WeightedScore, string(result.Level), time.Since(start), false)

			// Persist asynchronously so the response never waits on sqlite
			snapshot := req.Snapshot
			go func() {
				if err := historyService.SaveScore(snapshot, result); err != nil {
					slog.Error("Failed to save score to history", "error", err, "feedback_id", snapshot.ID)
				}
			}()

			c.JSON(http.StatusOK, result)
		})

	r.POST("/experiments/results",
		rateLimiter.EndpointRateLimitMiddleware("/experiments/results", experimentLimit),
		func(c *gin.Context) {
			start := time.Now()

			var req types.ExperimentRequest
			if err := c.BindJSON(&req); err != nil {
				appErr := errors.ToAppError(err)
				errors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}

			cfg := experimentCfg
			if req.Method != "" {
				cfg.Method = req.Method
			}
			if req.TargetSampleSize > 0 {
				cfg.TargetSampleSize = req.TargetSampleSize
			}

			engine := experiment.NewEngine(cfg)
			results, err := engine.ComputeResults(req.Variants, req.DaysRunning)
			if err != nil {
				appErr := errors.ToAppError(err)
				errors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}

			appMetrics.IncrementExperimentCalls()
			appLogger.ExperimentLogger(req.ExperimentKey, len(req.Variants), string(results.RecommendedAction), results.HasSignificantWinner, time.Since(start))

			experimentKey := req.ExperimentKey
			method := cfg.Method
			go func() {
				if err := historyService.SaveRun(experimentKey, method, results); err != nil {
					slog.Error("Failed to save experiment run", "error", err, "experiment_key", experimentKey)
				}
			}()

			c.JSON(http.StatusOK, results)
		})

	r.GET("/scores/recent", func(c *gin.Context) {
		limit := queryLimit(c, 50)

		records, err := historyService.RecentScores(limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/scores/recent", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve recent scores"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"scores": records,
			"count":  len(records),
		})
	})

	r.GET("/scores/feedback/:id", func(c *gin.Context) {
		feedbackID := c.Param("id")
		limit := queryLimit(c, 50)

		records, err := historyService.ScoresForFeedback(feedbackID, limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/scores/feedback/"+feedbackID, c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve score history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"feedback_id": feedbackID,
			"scores":      records,
			"count":       len(records),
		})
	})

	r.GET("/experiments/:key/history", func(c *gin.Context) {
		experimentKey := c.Param("key")
		limit := queryLimit(c, 50)

		records, err := historyService.RunsForExperiment(experimentKey, limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/experiments/"+experimentKey+"/history", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve experiment history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"experiment_key": experimentKey,
			"runs":           records,
			"count":          len(records),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"metrics":   appMetrics.GetStats(),
		})
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	// Rate limiter stats endpoint
	r.GET("/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, rateLimiter.GetStats())
	})

	// Database pool stats endpoint
	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": db.GetPoolStats(),
		})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if redisClient != nil {
		errors.SafeClose(redisClient, "redis")
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func queryLimit(c *gin.Context, fallback int) int {
	limit := fallback
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	return limit
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
