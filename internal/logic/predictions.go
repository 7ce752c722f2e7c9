package logic

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/model"
	"github.com/scoutai/predict-api/internal/models"
)

type predictionService struct {
	builder VectorBuilder
	runner  Runner
	logger  *zap.SugaredLogger
}

// NewPredictionService creates the prediction service.
func NewPredictionService(builder VectorBuilder, runner Runner, logger *zap.Logger) PredictionService {
	return &predictionService{
		builder: builder,
		runner:  runner,
		logger:  logger.Sugar(),
	}
}

// PredictMatch builds the inference vector and scores it. Errors map
// onto the API surface: the handler turns model.ErrNotReady into 503
// and features.ErrInsufficientData into 422.
func (s *predictionService) PredictMatch(ctx context.Context, req *models.PredictRequest) (*models.PredictResponse, error) {
	if !s.runner.Ready() {
		return nil, model.ErrNotReady
	}

	start := time.Now()

	vec, err := s.builder.BuildInferenceVector(ctx, req.RedTeams, req.BlueTeams, req.EventKey, req.CompLevel, req.EventWeek)
	if err != nil {
		return nil, err
	}

	winProb, redScore, blueScore, err := s.runner.Predict(vec)
	if err != nil {
		return nil, err
	}

	winner := "blue"
	prob := 1 - winProb
	if winProb > 0.5 {
		winner = "red"
		prob = winProb
	}

	resp := &models.PredictResponse{
		Winner:         winner,
		WinProbability: math.Round(prob*1000) / 1000,
		RedScore:       nonNegative(redScore),
		BlueScore:      nonNegative(blueScore),
	}
	resp.Margin = resp.RedScore - resp.BlueScore
	if resp.Margin < 0 {
		resp.Margin = -resp.Margin
	}

	predictionsTotal.WithLabelValues(winner).Inc()
	predictionDuration.Observe(time.Since(start).Seconds())
	s.logger.Infow("Prediction served",
		"event", req.EventKey,
		"winner", winner,
		"win_probability", resp.WinProbability,
		"duration", time.Since(start),
	)
	return resp, nil
}

func nonNegative(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
