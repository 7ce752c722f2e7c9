// The trainer fits the winner classifier, both score regressors, and
// the feature scaler on the pipeline's dataset, then writes the model
// artifacts alongside the ordered feature column list. The column list
// is what the server trusts at serving time, so schema and models
// always travel together.
package main

import (
	"log"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/config"
	"github.com/scoutai/predict-api/internal/dataset"
	"github.com/scoutai/predict-api/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	dataPath := filepath.Join(cfg.DataDir, "match_features.csv")
	records, err := dataset.Read(dataPath)
	if err != nil {
		sugar.Fatalw("Failed to load dataset", "path", dataPath, "error", err)
	}
	sugar.Infow("Dataset loaded", "path", dataPath, "rows", len(records))

	runner, err := model.Train(records, model.TrainConfig{})
	if err != nil {
		sugar.Fatalw("Training failed", "error", err)
	}

	if err := runner.Save(cfg.ModelDir); err != nil {
		sugar.Fatalw("Failed to save model artifacts", "error", err)
	}
	sugar.Infow("Models saved", "dir", cfg.ModelDir)
}
