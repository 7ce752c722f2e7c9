package features

// Columns is the canonical feature schema, in the exact order persisted
// with trained models. Every feature vector this package produces
// carries precisely these fields; the serving path orders values by
// the column list loaded from the model artifacts, never by this slice
// directly, so a drifted artifact is caught instead of silently
// misaligned.
var Columns = []string{
	"red_avg_epa",
	"red_avg_auto",
	"red_avg_teleop",
	"red_avg_endgame",
	"red_sum_epa",
	"red_max_epa",
	"blue_avg_epa",
	"blue_avg_auto",
	"blue_avg_teleop",
	"blue_avg_endgame",
	"blue_sum_epa",
	"blue_max_epa",
	"comp_level",
	"event_week",
	"epa_diff",
	"avg_epa_diff",
}

// Comp level encoding: qualification 0, eighth/quarterfinal 1,
// semifinal 2, final 3. Unrecognized levels encode as qualification.
var compLevels = map[string]int{
	"qm": 0,
	"ef": 1,
	"qf": 1,
	"sf": 2,
	"f":  3,
}

// EncodeCompLevel maps an upstream comp_level string to its numeric
// encoding.
func EncodeCompLevel(level string) int {
	return compLevels[level]
}
