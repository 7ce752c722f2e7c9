package logic

import (
	"context"

	"github.com/scoutai/predict-api/internal/models"
)

// PredictionService defines the interface for match outcome prediction
type PredictionService interface {
	PredictMatch(ctx context.Context, req *models.PredictRequest) (*models.PredictResponse, error)
}

// VectorBuilder builds a ready-to-score feature vector for one request
type VectorBuilder interface {
	BuildInferenceVector(ctx context.Context, redTeams, blueTeams []int, eventKey string, compLevel, eventWeek int) (*models.FeatureVector, error)
}

// Runner scores a feature vector with the loaded model artifacts
type Runner interface {
	Ready() bool
	Predict(vec *models.FeatureVector) (winProb, redScore, blueScore float64, err error)
}
