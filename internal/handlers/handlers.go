package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Config wires the handler's dependencies. Redis is nil unless the
// serving cache runs on the Redis backend.
type Config struct {
	Logger     *zap.Logger
	Prediction logic.PredictionService
	Runner     logic.Runner
	Redis      *redis.Client
}

type Handler struct {
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	prediction logic.PredictionService
	runner     logic.Runner
	redis      *redis.Client
}

func New(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		prediction: cfg.Prediction,
		runner:     cfg.Runner,
		redis:      cfg.Redis,
	}
}

// Routes mounts all endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Post("/api/v1/predict", h.Predict)
}
