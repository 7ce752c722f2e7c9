package features

import "github.com/scoutai/predict-api/internal/models"

// Aggregate reduces up to 3 per-team ratings into one alliance summary,
// computed over the valid (non-nil) subset only. With no valid ratings
// every field is exactly 0.0. Sufficiency policy is not enforced here;
// the quality bar differs between the batch and serving callers, so the
// Builder owns it.
func Aggregate(ratings []*models.TeamRating) models.AllianceSummary {
	var valid []*models.TeamRating
	for _, r := range ratings {
		if r != nil {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return models.AllianceSummary{}
	}

	var s models.AllianceSummary
	for i, r := range valid {
		s.AvgTotal += r.Total
		s.AvgAuto += r.Auto
		s.AvgTeleop += r.Teleop
		s.AvgEndgame += r.Endgame
		s.SumTotal += r.Total
		if i == 0 || r.Total > s.MaxTotal {
			s.MaxTotal = r.Total
		}
	}
	n := float64(len(valid))
	s.AvgTotal /= n
	s.AvgAuto /= n
	s.AvgTeleop /= n
	s.AvgEndgame /= n
	return s
}

// countValid returns the number of non-nil ratings.
func countValid(ratings []*models.TeamRating) int {
	n := 0
	for _, r := range ratings {
		if r != nil {
			n++
		}
	}
	return n
}
