package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pollwise/survey-intake-api/api/swagger"
	"github.com/pollwise/survey-intake-api/internal/handler"
	"github.com/pollwise/survey-intake-api/internal/middleware"
	"github.com/pollwise/survey-intake-api/internal/repository"
	"github.com/pollwise/survey-intake-api/internal/service"
	"github.com/pollwise/survey-intake-api/pkg/cache"
	"github.com/pollwise/survey-intake-api/pkg/config"
	"github.com/pollwise/survey-intake-api/pkg/logger"
	corsmiddleware "github.com/pollwise/survey-intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pollwise/survey-intake-api/pkg/middleware/requestid"
	"github.com/pollwise/survey-intake-api/pkg/storage"
)

// @title Survey Intake API
// @version 0.1.0
// @description Accepts survey submissions, anonymizes PII and appends records to a durable log
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	appendLog, err := storage.Open(cfg.Storage.Path, cfg.Storage.Fsync)
	if err != nil {
		logr.Sugar().Fatalw("failed to open submission log", "path", cfg.Storage.Path, "error", err)
	}
	defer appendLog.Close() //nolint:errcheck

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, rate limiting disabled", "error", err)
		}
	}

	submissions := repository.NewSubmissionRepository(appendLog)
	submissionSvc := service.NewSubmissionService(submissions, service.NewValidator(), nil, logr, metricsSvc)
	surveyHandler := handler.NewSurveyHandler(submissionSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/ping", surveyHandler.Ping)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")
	if cfg.RateLimit.Enabled && redisClient != nil {
		v1.Use(middleware.RateLimit(redisClient, cfg.RateLimit.PerMinute, logr))
	}
	v1.POST("/survey", surveyHandler.Submit)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "log_path", appendLog.Path())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
