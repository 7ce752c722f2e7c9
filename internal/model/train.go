package model

import (
	"fmt"

	"github.com/scoutai/predict-api/internal/dataset"
	"github.com/scoutai/predict-api/internal/features"
)

// TrainConfig controls gradient descent. Zero values pick the defaults.
type TrainConfig struct {
	Epochs       int
	LearningRate float64
}

// Train fits the scaler, winner classifier, and both score regressors
// on the dataset and returns a ready Runner. The column list is frozen
// from the live schema at training time and travels with the artifacts.
func Train(records []dataset.Record, cfg TrainConfig) (*Runner, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no training records")
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 500
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}

	rows := make([][]float64, len(records))
	winner := make([]float64, len(records))
	redScore := make([]float64, len(records))
	blueScore := make([]float64, len(records))
	for i, rec := range records {
		rows[i] = rec.Features
		winner[i] = float64(rec.Winner)
		redScore[i] = rec.RedScore
		blueScore[i] = rec.BlueScore
	}

	scaler := fitScaler(rows)
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		scaled[i] = scaler.Transform(row)
	}

	r := &Runner{
		scaler:  *scaler,
		columns: append([]string{}, features.Columns...),
	}
	r.classifier = fitLinear(scaled, winner, cfg, true)
	r.redReg = fitLinear(scaled, redScore, cfg, false)
	r.blueReg = fitLinear(scaled, blueScore, cfg, false)
	r.ready = true
	return r, nil
}

// fitLinear runs full-batch gradient descent. With logistic true the
// output goes through a sigmoid and the gradient is the cross-entropy
// one; otherwise plain least squares. The bias starts at the label mean
// so the regressors converge quickly on large score targets.
func fitLinear(x [][]float64, y []float64, cfg TrainConfig, logistic bool) linearModel {
	n := len(x)
	dim := len(x[0])
	m := linearModel{Weights: make([]float64, dim)}

	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	if !logistic {
		m.Bias = mean
	}

	gradW := make([]float64, dim)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for i := range gradW {
			gradW[i] = 0
		}
		gradB := 0.0

		for i, row := range x {
			pred := m.predict(row)
			if logistic {
				pred = sigmoid(pred)
			}
			err := pred - y[i]
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}

		step := cfg.LearningRate / float64(n)
		for j := range m.Weights {
			m.Weights[j] -= step * gradW[j]
		}
		m.Bias -= step * gradB
	}
	return m
}
