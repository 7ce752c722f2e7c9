package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scoutai/predict-api/internal/features"
	"github.com/scoutai/predict-api/internal/models"
)

// Artifact file names, written by the trainer and loaded verbatim by
// the server at startup.
const (
	classifierFile = "winner_classifier.json"
	redRegFile     = "red_score_regressor.json"
	blueRegFile    = "blue_score_regressor.json"
	scalerFile     = "feature_scaler.json"
	columnsFile    = "feature_columns.json"
)

// Runner holds the loaded artifacts and scores feature vectors. The
// zero value is the degraded "not ready" state.
type Runner struct {
	classifier linearModel
	redReg     linearModel
	blueReg    linearModel
	scaler     Scaler
	columns    []string
	ready      bool
}

// Load reads all artifacts from dir and validates the persisted column
// list against the live feature schema. A schema divergence returns
// ErrSchemaMismatch and must abort startup; any other failure leaves
// the caller free to run degraded with a zero Runner.
func Load(dir string) (*Runner, error) {
	r := &Runner{}

	if err := readArtifact(dir, columnsFile, &r.columns); err != nil {
		return nil, err
	}
	if err := checkSchema(r.columns); err != nil {
		return nil, err
	}

	if err := readArtifact(dir, classifierFile, &r.classifier); err != nil {
		return nil, err
	}
	if err := readArtifact(dir, redRegFile, &r.redReg); err != nil {
		return nil, err
	}
	if err := readArtifact(dir, blueRegFile, &r.blueReg); err != nil {
		return nil, err
	}
	if err := readArtifact(dir, scalerFile, &r.scaler); err != nil {
		return nil, err
	}

	for _, m := range []*linearModel{&r.classifier, &r.redReg, &r.blueReg} {
		if len(m.Weights) != len(r.columns) {
			return nil, fmt.Errorf("%w: model has %d weights for %d columns",
				ErrSchemaMismatch, len(m.Weights), len(r.columns))
		}
	}
	if len(r.scaler.Mean) != len(r.columns) || len(r.scaler.Scale) != len(r.columns) {
		return nil, fmt.Errorf("%w: scaler dimensions do not match columns", ErrSchemaMismatch)
	}

	r.ready = true
	return r, nil
}

// checkSchema requires the persisted column list and the live builder
// schema to contain exactly the same columns.
func checkSchema(cols []string) error {
	if len(cols) != len(features.Columns) {
		return fmt.Errorf("%w: artifact has %d columns, builder produces %d",
			ErrSchemaMismatch, len(cols), len(features.Columns))
	}
	// A probe vector resolves every artifact column or fails.
	if _, err := (&models.FeatureVector{}).Values(cols); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}

// Ready reports whether artifacts are loaded and predictions can be
// served.
func (r *Runner) Ready() bool {
	return r != nil && r.ready
}

// Predict scores one feature vector: P(red wins) plus both predicted
// alliance scores. Field order comes from the column artifact, never
// from the live schema, so a loaded model always sees features in the
// order it was trained on.
func (r *Runner) Predict(vec *models.FeatureVector) (winProb, redScore, blueScore float64, err error) {
	if !r.Ready() {
		return 0, 0, 0, ErrNotReady
	}

	vals, err := vec.Values(r.columns)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	x := r.scaler.Transform(vals)

	return sigmoid(r.classifier.predict(x)), r.redReg.predict(x), r.blueReg.predict(x), nil
}

// Save writes all artifacts to dir, creating it if needed.
func (r *Runner) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	artifacts := map[string]interface{}{
		classifierFile: &r.classifier,
		redRegFile:     &r.redReg,
		blueRegFile:    &r.blueReg,
		scalerFile:     &r.scaler,
		columnsFile:    r.columns,
	}
	for name, v := range artifacts {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func readArtifact(dir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode artifact %s: %w", name, err)
	}
	return nil
}
