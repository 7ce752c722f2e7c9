package models

import "fmt"

// FeatureVector is the canonical per-match feature set, produced
// identically by the batch pipeline and the prediction server. Field
// order on the wire is governed by the column list recorded with the
// trained models, never by struct layout.
type FeatureVector struct {
	RedAvgEPA     float64
	RedAvgAuto    float64
	RedAvgTeleop  float64
	RedAvgEndgame float64
	RedSumEPA     float64
	RedMaxEPA     float64

	BlueAvgEPA     float64
	BlueAvgAuto    float64
	BlueAvgTeleop  float64
	BlueAvgEndgame float64
	BlueSumEPA     float64
	BlueMaxEPA     float64

	CompLevel  float64
	EventWeek  float64
	EPADiff    float64
	AvgEPADiff float64
}

// AsMap returns the vector keyed by canonical column name.
func (v *FeatureVector) AsMap() map[string]float64 {
	return map[string]float64{
		"red_avg_epa":      v.RedAvgEPA,
		"red_avg_auto":     v.RedAvgAuto,
		"red_avg_teleop":   v.RedAvgTeleop,
		"red_avg_endgame":  v.RedAvgEndgame,
		"red_sum_epa":      v.RedSumEPA,
		"red_max_epa":      v.RedMaxEPA,
		"blue_avg_epa":     v.BlueAvgEPA,
		"blue_avg_auto":    v.BlueAvgAuto,
		"blue_avg_teleop":  v.BlueAvgTeleop,
		"blue_avg_endgame": v.BlueAvgEndgame,
		"blue_sum_epa":     v.BlueSumEPA,
		"blue_max_epa":     v.BlueMaxEPA,
		"comp_level":       v.CompLevel,
		"event_week":       v.EventWeek,
		"epa_diff":         v.EPADiff,
		"avg_epa_diff":     v.AvgEPADiff,
	}
}

// Values flattens the vector into the given column order. An unknown
// column means the live schema and a persisted column list have
// diverged, which callers must treat as fatal.
func (v *FeatureVector) Values(cols []string) ([]float64, error) {
	m := v.AsMap()
	out := make([]float64, len(cols))
	for i, col := range cols {
		val, ok := m[col]
		if !ok {
			return nil, fmt.Errorf("feature vector has no column %q", col)
		}
		out[i] = val
	}
	return out, nil
}

// TrainingRow is a feature vector plus the label and raw scores kept
// only in the offline dataset.
type TrainingRow struct {
	FeatureVector

	Winner      int // 1 = red, 0 = blue; ties are never emitted
	RedScore    int
	BlueScore   int
	ScoreMargin int
	Year        int
	EventKey    string
}
