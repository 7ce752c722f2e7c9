package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/config"
	"github.com/scoutai/predict-api/internal/features"
	"github.com/scoutai/predict-api/internal/handlers"
	"github.com/scoutai/predict-api/internal/logic"
	"github.com/scoutai/predict-api/internal/model"
	"github.com/scoutai/predict-api/internal/ratings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load model artifacts. A diverged column list would silently
	// misalign every prediction, so it aborts startup. Anything else
	// (missing artifacts, corrupt files) starts the server degraded:
	// health checks answer, predictions return 503.
	runner, err := model.Load(cfg.ModelDir)
	if err != nil {
		if errors.Is(err, model.ErrSchemaMismatch) {
			sugar.Fatalw("Model artifacts do not match the live feature schema", "error", err)
		}
		sugar.Warnw("Could not load models, starting degraded", "dir", cfg.ModelDir, "error", err)
		runner = &model.Runner{}
	} else {
		sugar.Infow("Models loaded", "dir", cfg.ModelDir)
	}

	// Serving-mode rating cache: TTL-bounded, negative-caching, per-key
	// fetch de-duplication. Redis backend when configured, in-memory
	// otherwise.
	client := ratings.NewClient(cfg.StatboticsBaseURL, cfg.ServeFetchTimeout, logger)
	var redisClient *redis.Client
	var store ratings.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		store = ratings.NewRedisStore(redisClient, cfg.RatingCacheTTL, logger)
		sugar.Infow("Rating cache using Redis", "ttl", cfg.RatingCacheTTL)
	} else {
		store = ratings.NewMemoryStore(cfg.RatingCacheTTL, nil)
		sugar.Infow("Rating cache in memory", "ttl", cfg.RatingCacheTTL)
	}
	cache := ratings.NewCache(ratings.CacheConfig{
		Fetcher: client,
		Store:   store,
		Logger:  logger,
	})

	builder := features.NewBuilder(cache, logger)
	prediction := logic.NewPredictionService(builder, runner, logger)

	h := handlers.New(handlers.Config{
		Logger:     logger,
		Prediction: prediction,
		Runner:     runner,
		Redis:      redisClient,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(h.RequestLogger)
	h.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sugar.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("Shutdown error", "error", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
