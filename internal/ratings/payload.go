package ratings

import (
	"encoding/json"
	"strconv"

	"github.com/scoutai/predict-api/internal/models"
)

// The rating service's payload shape varies by season: the "epa" value
// may be an object with a structured breakdown, an object with flat
// point keys, or a bare scalar. Extraction is an ordered list of
// strategies tried in sequence so each shape stays independently
// testable. The first strategy that recognizes the shape wins.
var extractStrategies = []func(epa json.RawMessage) (*models.TeamRating, bool){
	extractBreakdown,
	extractFlatKeys,
	extractScalar,
}

// parseRating extracts a TeamRating from a raw rating-service payload.
// Returns nil when no strategy recognizes the shape or the payload has
// no epa value at all; individual fields that fail numeric coercion
// become 0.0 rather than failing the record.
func parseRating(body []byte) *models.TeamRating {
	var payload struct {
		EPA json.RawMessage `json:"epa"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.EPA) == 0 {
		return nil
	}
	for _, extract := range extractStrategies {
		if r, ok := extract(payload.EPA); ok {
			return r
		}
	}
	return nil
}

// extractBreakdown handles the structured shape:
// {"breakdown": {"total_points": {"mean": 42.1}, ...}}
func extractBreakdown(epa json.RawMessage) (*models.TeamRating, bool) {
	var obj struct {
		Breakdown map[string]json.RawMessage `json:"breakdown"`
	}
	if err := json.Unmarshal(epa, &obj); err != nil || obj.Breakdown == nil {
		return nil, false
	}
	return &models.TeamRating{
		Total:   safeMean(obj.Breakdown["total_points"]),
		Auto:    safeMean(obj.Breakdown["auto_points"]),
		Teleop:  safeMean(obj.Breakdown["teleop_points"]),
		Endgame: safeMean(obj.Breakdown["endgame_points"]),
	}, true
}

// extractFlatKeys handles seasons without a structured breakdown, where
// point values sit directly on the epa object. Total falls back through
// explicit point keys, then generic total/mean keys.
func extractFlatKeys(epa json.RawMessage) (*models.TeamRating, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(epa, &fields); err != nil {
		return nil, false
	}
	return &models.TeamRating{
		Total:   firstMean(fields, "total_points", "total", "mean", "epa"),
		Auto:    firstMean(fields, "auto_points", "auto"),
		Teleop:  firstMean(fields, "teleop_points", "teleop"),
		Endgame: firstMean(fields, "endgame_points", "endgame"),
	}, true
}

// extractScalar handles the oldest shape where the whole epa value is a
// single number, treated as the total.
func extractScalar(epa json.RawMessage) (*models.TeamRating, bool) {
	v, err := strconv.ParseFloat(string(epa), 64)
	if err != nil {
		return nil, false
	}
	return &models.TeamRating{Total: v}, true
}

// safeMean coerces a raw value to float64: objects contribute their
// "mean" field, bare numbers contribute themselves, anything else is 0.
func safeMean(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return v
	}
	var obj struct {
		Mean json.RawMessage `json:"mean"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj.Mean) == 0 {
		return 0
	}
	if v, err := strconv.ParseFloat(string(obj.Mean), 64); err == nil {
		return v
	}
	return 0
}

// firstMean coerces the first substantive candidate among the given
// keys. Selection happens on the raw value, before coercion: a key
// holding null, false, 0, an empty string, or an empty container keeps
// falling through (the upstream convention for "not reported here"),
// but a non-empty object is selected even when its mean is zero.
func firstMean(fields map[string]json.RawMessage, keys ...string) float64 {
	for _, key := range keys {
		if raw, ok := fields[key]; ok && substantive(raw) {
			return safeMean(raw)
		}
	}
	return 0
}

// substantive reports whether a raw JSON value carries a reportable
// rating: empty values and zero scalars do not.
func substantive(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}
