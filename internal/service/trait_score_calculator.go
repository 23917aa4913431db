package service

import (
	"context"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/util"
)

// traitScorePrecision is the number of fractional digits kept on trait scores.
const traitScorePrecision = 4

// TraitScorer computes normalized trait scores for a persisted attempt.
type TraitScorer interface {
	CalculateScores(ctx context.Context, attemptID int64) (domain.TraitScores, error)
}

// TraitScoreCalculator aggregates option→trait weights for an attempt and
// normalizes each trait by the maximum reachable through the questions the
// attempt actually answered.
type TraitScoreCalculator struct {
	weights domain.TraitWeightRepository
}

// NewTraitScoreCalculator creates a new TraitScoreCalculator.
func NewTraitScoreCalculator(weights domain.TraitWeightRepository) *TraitScoreCalculator {
	return &TraitScoreCalculator{weights: weights}
}

// CalculateScores returns one entry per trait reached by a selected option.
// Traits no selected option touches are absent from the map.
func (c *TraitScoreCalculator) CalculateScores(ctx context.Context, attemptID int64) (domain.TraitScores, error) {
	selected, err := c.weights.SelectedWeightSums(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to aggregate trait weights for attempt %d", attemptID), err)
	}
	scores := make(domain.TraitScores, len(selected))
	if len(selected) == 0 {
		return scores, nil
	}

	maxSums, err := c.weights.MaxWeightSums(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to aggregate maximum trait weights for attempt %d", attemptID), err)
	}
	maxByCode := make(map[string]float64, len(maxSums))
	for _, m := range maxSums {
		maxByCode[m.Trait.Code] = m.Sum
	}

	for _, s := range selected {
		scores[s.Trait.Code] = domain.TraitScore{
			Trait: s.Trait,
			Score: normalizeTraitScore(s.Sum, maxByCode[s.Trait.Code]),
		}
	}
	return scores, nil
}

func normalizeTraitScore(sum, maxSum float64) float64 {
	if maxSum <= 0 {
		return 0
	}
	score := util.RoundHalfUp(sum/maxSum, traitScorePrecision)
	// Bounded to [0,1] even when reference weights break the non-negative invariant.
	return min(max(score, 0), 1)
}
