package ratings

import (
	"testing"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    [4]float64 // total, auto, teleop, endgame
		absent  bool
	}{
		{
			name: "Structured breakdown",
			body: `{"epa": {"breakdown": {
				"total_points": {"mean": 42.5},
				"auto_points": {"mean": 10.1},
				"teleop_points": {"mean": 25.4},
				"endgame_points": {"mean": 7.0}
			}}}`,
			want: [4]float64{42.5, 10.1, 25.4, 7.0},
		},
		{
			name: "Breakdown with bare numbers",
			body: `{"epa": {"breakdown": {"total_points": 30, "auto_points": 5}}}`,
			want: [4]float64{30, 5, 0, 0},
		},
		{
			name: "Flat explicit point keys",
			body: `{"epa": {"total_points": 55.5, "auto_points": 12, "teleop_points": 33.5, "endgame_points": 10}}`,
			want: [4]float64{55.5, 12, 33.5, 10},
		},
		{
			name: "Flat short keys",
			body: `{"epa": {"total": 20, "auto": 4, "teleop": 12, "endgame": 4}}`,
			want: [4]float64{20, 4, 12, 4},
		},
		{
			name: "Flat generic mean key",
			body: `{"epa": {"mean": 47.25}}`,
			want: [4]float64{47.25, 0, 0, 0},
		},
		{
			name: "Flat epa key last in priority",
			body: `{"epa": {"epa": 15}}`,
			want: [4]float64{15, 0, 0, 0},
		},
		{
			name: "Scalar epa",
			body: `{"epa": 63.2}`,
			want: [4]float64{63.2, 0, 0, 0},
		},
		{
			name: "Uncoercible field becomes zero, not failure",
			body: `{"epa": {"breakdown": {"total_points": {"mean": 42.5}, "auto_points": "n/a"}}}`,
			want: [4]float64{42.5, 0, 0, 0},
		},
		{
			name: "Flat zero scalar falls through",
			body: `{"epa": {"total_points": 0, "total": 5}}`,
			want: [4]float64{5, 0, 0, 0},
		},
		{
			name: "Flat null falls through",
			body: `{"epa": {"total_points": null, "total": 5}}`,
			want: [4]float64{5, 0, 0, 0},
		},
		{
			name: "Non-empty object selected even when its mean is zero",
			body: `{"epa": {"total_points": {"mean": 0}, "total": 5}}`,
			want: [4]float64{0, 0, 0, 0},
		},
		{
			name:   "No epa key at all",
			body:   `{"team": 254}`,
			absent: true,
		},
		{
			name:   "Epa is a string",
			body:   `{"epa": "unavailable"}`,
			absent: true,
		},
		{
			name:   "Not JSON",
			body:   `<html>502 Bad Gateway</html>`,
			absent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRating([]byte(tt.body))
			if tt.absent {
				if got != nil {
					t.Fatalf("expected absent rating, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a rating, got absent")
			}
			fields := [4]float64{got.Total, got.Auto, got.Teleop, got.Endgame}
			if fields != tt.want {
				t.Errorf("got %v, want %v", fields, tt.want)
			}
		})
	}
}

func TestParseRatingBreakdownPreferredOverFlat(t *testing.T) {
	// When both shapes are present the structured breakdown wins.
	body := `{"epa": {"total_points": 99, "breakdown": {"total_points": {"mean": 42}}}}`
	got := parseRating([]byte(body))
	if got == nil {
		t.Fatal("expected a rating")
	}
	if got.Total != 42 {
		t.Errorf("expected breakdown total 42, got %v", got.Total)
	}
}
