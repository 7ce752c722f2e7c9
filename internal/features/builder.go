package features

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// Minimum count of valid per-team ratings an alliance needs before its
// aggregate is trusted. Training demands 2 of 3; serving accepts a
// degraded 1 of 3. Every other step of vector construction is shared.
const (
	TrainingMinValid = 2
	ServingMinValid  = 1
)

// AllianceSize is the number of teams per alliance.
const AllianceSize = 3

// Rejection reasons for the batch path. The pipeline counts them; none
// is fatal.
var (
	ErrIncompleteAlliance = errors.New("alliance has fewer than 3 identifiable teams")
	ErrInsufficientData   = errors.New("not enough valid team ratings")
	ErrTiedMatch          = errors.New("tied match has no winner label")
)

// RatingSource resolves one team's rating at one event; nil = absent.
type RatingSource interface {
	GetOrFetch(ctx context.Context, team int, eventKey string) *models.TeamRating
}

// Builder turns raw match records or prediction requests into canonical
// feature vectors. The batch pipeline and the prediction server share
// this one core so training-time and serving-time vectors cannot drift
// apart.
type Builder struct {
	ratings RatingSource
	logger  *zap.SugaredLogger
}

// NewBuilder creates a feature vector builder.
func NewBuilder(ratings RatingSource, logger *zap.Logger) *Builder {
	return &Builder{
		ratings: ratings,
		logger:  logger.Sugar(),
	}
}

// BuildTrainingRow builds one labeled dataset row from a completed
// match. Rejections return a sentinel error; the caller counts and
// continues.
func (b *Builder) BuildTrainingRow(ctx context.Context, match *models.Match, event *models.Event) (*models.TrainingRow, error) {
	redTeams := match.Alliances.Red.TeamNumbers()
	blueTeams := match.Alliances.Blue.TeamNumbers()
	if len(redTeams) < AllianceSize || len(blueTeams) < AllianceSize {
		return nil, ErrIncompleteAlliance
	}

	redRatings := b.fetchAlliance(ctx, redTeams[:AllianceSize], event.Key)
	blueRatings := b.fetchAlliance(ctx, blueTeams[:AllianceSize], event.Key)

	if countValid(redRatings) < TrainingMinValid || countValid(blueRatings) < TrainingMinValid {
		return nil, ErrInsufficientData
	}

	vec := b.compose(redRatings, blueRatings, EncodeCompLevel(match.CompLevel), event.EventWeek())

	// There is no draw class: tied matches contribute no row.
	redScore := match.Alliances.Red.Score
	blueScore := match.Alliances.Blue.Score
	if redScore == blueScore {
		return nil, ErrTiedMatch
	}
	winner := 0
	if redScore > blueScore {
		winner = 1
	}

	return &models.TrainingRow{
		FeatureVector: *vec,
		Winner:        winner,
		RedScore:      redScore,
		BlueScore:     blueScore,
		ScoreMargin:   redScore - blueScore,
		Year:          event.Year,
		EventKey:      event.Key,
	}, nil
}

// BuildInferenceVector builds a ready-to-score vector for a prediction
// request. The sufficiency gate is the relaxed serving threshold;
// everything else matches the training path exactly.
func (b *Builder) BuildInferenceVector(ctx context.Context, redTeams, blueTeams []int, eventKey string, compLevel, eventWeek int) (*models.FeatureVector, error) {
	redRatings := b.fetchAlliance(ctx, redTeams, eventKey)
	blueRatings := b.fetchAlliance(ctx, blueTeams, eventKey)

	if countValid(redRatings) < ServingMinValid || countValid(blueRatings) < ServingMinValid {
		return nil, ErrInsufficientData
	}

	return b.compose(redRatings, blueRatings, compLevel, eventWeek), nil
}

func (b *Builder) fetchAlliance(ctx context.Context, teams []int, eventKey string) []*models.TeamRating {
	ratings := make([]*models.TeamRating, len(teams))
	for i, team := range teams {
		ratings[i] = b.ratings.GetOrFetch(ctx, team, eventKey)
	}
	return ratings
}

// compose assembles the canonical vector from both alliance aggregates
// plus match context.
func (b *Builder) compose(redRatings, blueRatings []*models.TeamRating, compLevel, eventWeek int) *models.FeatureVector {
	red := Aggregate(redRatings)
	blue := Aggregate(blueRatings)

	return &models.FeatureVector{
		RedAvgEPA:     red.AvgTotal,
		RedAvgAuto:    red.AvgAuto,
		RedAvgTeleop:  red.AvgTeleop,
		RedAvgEndgame: red.AvgEndgame,
		RedSumEPA:     red.SumTotal,
		RedMaxEPA:     red.MaxTotal,

		BlueAvgEPA:     blue.AvgTotal,
		BlueAvgAuto:    blue.AvgAuto,
		BlueAvgTeleop:  blue.AvgTeleop,
		BlueAvgEndgame: blue.AvgEndgame,
		BlueSumEPA:     blue.SumTotal,
		BlueMaxEPA:     blue.MaxTotal,

		CompLevel:  float64(compLevel),
		EventWeek:  float64(eventWeek),
		EPADiff:    red.SumTotal - blue.SumTotal,
		AvgEPADiff: red.AvgTotal - blue.AvgTotal,
	}
}
