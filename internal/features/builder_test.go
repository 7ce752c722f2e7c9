package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// mapSource serves ratings from a fixed map, keyed "team-event".
type mapSource struct {
	ratings map[string]*models.TeamRating
}

func (s *mapSource) GetOrFetch(_ context.Context, team int, eventKey string) *models.TeamRating {
	return s.ratings[fmt.Sprintf("%d-%s", team, eventKey)]
}

func sourceWithTotals(eventKey string, totals map[int]float64) *mapSource {
	s := &mapSource{ratings: map[string]*models.TeamRating{}}
	for team, total := range totals {
		s.ratings[fmt.Sprintf("%d-%s", team, eventKey)] = &models.TeamRating{
			TeamNumber: team, EventKey: eventKey, Total: total,
		}
	}
	return s
}

func testMatch(redScore, blueScore int, compLevel string) *models.Match {
	m := &models.Match{Key: "2024test_qm1", CompLevel: compLevel}
	m.Alliances.Red.Score = redScore
	m.Alliances.Red.TeamKeys = []string{"frc1", "frc2", "frc3"}
	m.Alliances.Blue.Score = blueScore
	m.Alliances.Blue.TeamKeys = []string{"frc4", "frc5", "frc6"}
	return m
}

func testEvent() *models.Event {
	week := 3
	return &models.Event{Key: "2024test", Year: 2024, Week: &week}
}

func TestBuildTrainingRowEndToEnd(t *testing.T) {
	// Red totals [50, 40, 30]; blue [20, 25, absent].
	src := sourceWithTotals("2024test", map[int]float64{
		1: 50, 2: 40, 3: 30,
		4: 20, 5: 25,
	})
	b := NewBuilder(src, zap.NewNop())

	row, err := b.BuildTrainingRow(context.Background(), testMatch(72, 41, "qm"), testEvent())
	if err != nil {
		t.Fatalf("BuildTrainingRow: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"red_sum_epa", row.RedSumEPA, 120},
		{"red_avg_epa", row.RedAvgEPA, 40},
		{"red_max_epa", row.RedMaxEPA, 50},
		{"blue_sum_epa", row.BlueSumEPA, 45},
		{"blue_avg_epa", row.BlueAvgEPA, 22.5},
		{"epa_diff", row.EPADiff, 75},
		{"avg_epa_diff", row.AvgEPADiff, 17.5},
		{"comp_level", row.CompLevel, 0},
		{"event_week", row.EventWeek, 3},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if row.Winner != 1 {
		t.Errorf("winner = %d, want 1 (red)", row.Winner)
	}
	if row.ScoreMargin != 31 {
		t.Errorf("score_margin = %d, want 31", row.ScoreMargin)
	}
	if row.Year != 2024 || row.EventKey != "2024test" {
		t.Errorf("bookkeeping fields wrong: year=%d event=%q", row.Year, row.EventKey)
	}
}

func TestSufficiencyGateAsymmetry(t *testing.T) {
	// Red has only 1 of 3 valid ratings: below the training threshold
	// of 2, at the serving threshold of 1.
	src := sourceWithTotals("2024test", map[int]float64{
		1: 50,
		4: 20, 5: 25, 6: 30,
	})
	b := NewBuilder(src, zap.NewNop())
	ctx := context.Background()

	_, err := b.BuildTrainingRow(ctx, testMatch(10, 20, "qm"), testEvent())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("batch path should reject 1-of-3 alliance, got %v", err)
	}

	vec, err := b.BuildInferenceVector(ctx, []int{1, 2, 3}, []int{4, 5, 6}, "2024test", 0, 3)
	if err != nil {
		t.Fatalf("serving path should accept 1-of-3 alliance, got %v", err)
	}
	if vec.RedSumEPA != 50 {
		t.Errorf("red_sum_epa = %v, want 50", vec.RedSumEPA)
	}
}

func TestBuildTrainingRowRejections(t *testing.T) {
	src := sourceWithTotals("2024test", map[int]float64{
		1: 50, 2: 40, 3: 30,
		4: 20, 5: 25, 6: 30,
	})
	b := NewBuilder(src, zap.NewNop())
	ctx := context.Background()

	t.Run("Tie emits no row", func(t *testing.T) {
		_, err := b.BuildTrainingRow(ctx, testMatch(33, 33, "qm"), testEvent())
		if !errors.Is(err, ErrTiedMatch) {
			t.Errorf("expected ErrTiedMatch, got %v", err)
		}
	})

	t.Run("Short alliance rejected", func(t *testing.T) {
		m := testMatch(10, 20, "qm")
		m.Alliances.Blue.TeamKeys = []string{"frc4", "frc5", "not-a-team"}
		_, err := b.BuildTrainingRow(ctx, m, testEvent())
		if !errors.Is(err, ErrIncompleteAlliance) {
			t.Errorf("expected ErrIncompleteAlliance, got %v", err)
		}
	})

	t.Run("No sufficient data on both sides", func(t *testing.T) {
		empty := &mapSource{ratings: map[string]*models.TeamRating{}}
		_, err := NewBuilder(empty, zap.NewNop()).BuildInferenceVector(ctx, []int{1, 2, 3}, []int{4, 5, 6}, "2024test", 0, 0)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})
}

func TestEncodeCompLevel(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"qm", 0}, {"ef", 1}, {"qf", 1}, {"sf", 2}, {"f", 3},
		{"practice", 0}, {"", 0},
	}
	for _, tt := range tests {
		if got := EncodeCompLevel(tt.level); got != tt.want {
			t.Errorf("EncodeCompLevel(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCanonicalSchemaParity(t *testing.T) {
	if len(Columns) != 16 {
		t.Fatalf("canonical schema has %d columns, want 16", len(Columns))
	}

	src := sourceWithTotals("2024test", map[int]float64{
		1: 50, 2: 40, 3: 30,
		4: 20, 5: 25, 6: 30,
	})
	b := NewBuilder(src, zap.NewNop())
	vec, err := b.BuildInferenceVector(context.Background(), []int{1, 2, 3}, []int{4, 5, 6}, "2024test", 2, 5)
	if err != nil {
		t.Fatalf("BuildInferenceVector: %v", err)
	}

	// Every canonical column resolves, and the vector carries nothing
	// beyond the canonical set.
	if _, err := vec.Values(Columns); err != nil {
		t.Fatalf("vector cannot serve canonical schema: %v", err)
	}
	if got := len(vec.AsMap()); got != len(Columns) {
		t.Errorf("vector has %d fields, schema has %d", got, len(Columns))
	}
	for _, col := range Columns {
		if _, ok := vec.AsMap()[col]; !ok {
			t.Errorf("vector missing canonical column %q", col)
		}
	}

	// Order is positional: values come back in the order requested.
	vals, _ := vec.Values([]string{"comp_level", "event_week"})
	if vals[0] != 2 || vals[1] != 5 {
		t.Errorf("positional values wrong: %v", vals)
	}
}
