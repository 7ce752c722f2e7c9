package features

import (
	"testing"

	"github.com/scoutai/predict-api/internal/models"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		ratings []*models.TeamRating
		want    models.AllianceSummary
	}{
		{
			name:    "Empty valid subset is all zeros",
			ratings: []*models.TeamRating{nil, nil, nil},
			want:    models.AllianceSummary{},
		},
		{
			name: "Full alliance",
			ratings: []*models.TeamRating{
				{Total: 10, Auto: 2, Teleop: 6, Endgame: 2},
				{Total: 20, Auto: 4, Teleop: 12, Endgame: 4},
				{Total: 30, Auto: 6, Teleop: 18, Endgame: 6},
			},
			want: models.AllianceSummary{
				AvgTotal: 20, AvgAuto: 4, AvgTeleop: 12, AvgEndgame: 4,
				SumTotal: 60, MaxTotal: 30,
			},
		},
		{
			name: "Absent member excluded from means",
			ratings: []*models.TeamRating{
				{Total: 20, Auto: 5},
				nil,
				{Total: 25, Auto: 10},
			},
			want: models.AllianceSummary{
				AvgTotal: 22.5, AvgAuto: 7.5,
				SumTotal: 45, MaxTotal: 25,
			},
		},
		{
			name: "Rated zero is not absent",
			ratings: []*models.TeamRating{
				{Total: 0},
				{Total: 30},
			},
			want: models.AllianceSummary{
				AvgTotal: 15, SumTotal: 30, MaxTotal: 30,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.ratings); got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
