package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jsonvault/jsonvault/handlers"
	"github.com/jsonvault/jsonvault/internal/apidoc/handler"
	"github.com/jsonvault/jsonvault/internal/apidoc/repository"
	"github.com/jsonvault/jsonvault/internal/apidoc/service"
	"github.com/jsonvault/jsonvault/internal/config"
	"github.com/jsonvault/jsonvault/pkg/logger"
	"github.com/jsonvault/jsonvault/pkg/metrics"
	"github.com/jsonvault/jsonvault/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middlewares: logging + recovery (recovery is the catch-all that
	// turns any panic into a well-formed 500)
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.BodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	// Connect to Redis early so the rate-limiter can use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s), falling back to in-memory rate limiting: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if rdb != nil {
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	client, errConn := repository.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	for attempt := 2; errConn != nil && attempt <= maxAttempts; attempt++ {
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt-1, maxAttempts, errConn)
		time.Sleep(backoff)
		backoff *= 2
		client, errConn = repository.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	}

	var svc service.Service
	if errConn != nil {
		if cfg.IsProduction() {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		logger.Warnf("could not connect to MongoDB after %d attempts, using in-memory store: %v", maxAttempts, errConn)
		svc = service.NewMemoryService()
	} else {
		defer func() { _ = client.Disconnect(ctx) }()
		svc, err = service.NewMongoService(ctx, client.Database(cfg.MongoDB.Database))
		if err != nil {
			// without the unique slug index the create race is unguarded
			logger.Fatalf("failed to initialize document store: %v", err)
		}
	}

	h := handler.New(svc, cfg.IsProduction())
	h.Register(r)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Unmatched routes get a help payload listing the available endpoints
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "route not found",
			"endpoints": []string{
				"GET /health",
				"GET /api",
				"POST /api/create",
				"GET /api/:slug",
				"PUT /api/:slug",
				"DELETE /api/:slug",
			},
		})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("jsonvault listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	// close the listener on SIGINT/SIGTERM and drain in-flight connections
	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	logger.Infof("shutdown signal received, draining connections")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	logger.Infof("server stopped")
}
