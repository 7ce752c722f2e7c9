// Package model owns the trained prediction artifacts: a winner
// classifier, two score regressors, a feature scaler, and the ordered
// feature column list. Callers treat fit and predict as opaque; the
// column list artifact is the serving-time authority for feature order.
package model

import (
	"errors"
	"math"
)

var (
	// ErrNotReady is returned when predictions are requested before the
	// artifacts have been loaded. The server runs degraded in that
	// state: health checks answer, predictions are rejected.
	ErrNotReady = errors.New("models not loaded")

	// ErrSchemaMismatch means the persisted column list and the live
	// feature schema have diverged. A silent mismatch would produce
	// meaningless predictions, so startup must fail loudly on it.
	ErrSchemaMismatch = errors.New("model columns do not match feature schema")
)

// linearModel is a linear map over scaled features. The classifier
// passes its output through a sigmoid; the regressors use it raw.
type linearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

func (m *linearModel) predict(x []float64) float64 {
	v := m.Bias
	for i, w := range m.Weights {
		v += w * x[i]
	}
	return v
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// Scaler standardizes features column-wise to zero mean, unit variance.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns the standardized copy of x.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// fitScaler computes per-column mean and standard deviation. Columns
// with zero variance get scale 1 so constant features pass through.
func fitScaler(rows [][]float64) *Scaler {
	n := len(rows)
	dim := len(rows[0])
	s := &Scaler{Mean: make([]float64, dim), Scale: make([]float64, dim)}

	for _, row := range rows {
		for i, v := range row {
			s.Mean[i] += v
		}
	}
	for i := range s.Mean {
		s.Mean[i] /= float64(n)
	}
	for _, row := range rows {
		for i, v := range row {
			d := v - s.Mean[i]
			s.Scale[i] += d * d
		}
	}
	for i := range s.Scale {
		s.Scale[i] = math.Sqrt(s.Scale[i] / float64(n))
		if s.Scale[i] == 0 {
			s.Scale[i] = 1
		}
	}
	return s
}
