package service

import (
	"context"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"go.uber.org/zap"
)

// FallbackExplanation is used by the enriched mapper when no generated text
// is available for a matched profession.
const FallbackExplanation = "This profession matches the interest profile from your answers."

// ExplanationGenerator produces a short explanation per profession id.
type ExplanationGenerator interface {
	GenerateExplanations(ctx context.Context, professions []domain.Profession) (map[int64]string, error)
}

// MLResultMapper turns classifier predictions into recommendations.
type MLResultMapper struct {
	professions domain.ProfessionRepository
	explainer   ExplanationGenerator
	recorder    ScoringRecorder
}

// NewMLResultMapper creates a mapper that uses the templated explanation.
func NewMLResultMapper(professions domain.ProfessionRepository, recorder ScoringRecorder) *MLResultMapper {
	return &MLResultMapper{professions: professions, recorder: recorderOrNoop(recorder)}
}

// NewEnrichedMLResultMapper creates a mapper that asks explainer for a paragraph per matched profession.
func NewEnrichedMLResultMapper(professions domain.ProfessionRepository, explainer ExplanationGenerator, recorder ScoringRecorder) *MLResultMapper {
	return &MLResultMapper{professions: professions, explainer: explainer, recorder: recorderOrNoop(recorder)}
}

func templatedExplanation(major string) string {
	return "Predicted as: " + major
}

// ToRecommendations keeps one recommendation per prediction, in prediction
// order. Predictions whose class code is not in the catalog get a nil
// profession id.
func (m *MLResultMapper) ToRecommendations(ctx context.Context, resp *domain.MLResultResponse) ([]domain.Recommendation, error) {
	if resp == nil || len(resp.TopPredictions) == 0 {
		return []domain.Recommendation{}, nil
	}

	recommendations := make([]domain.Recommendation, 0, len(resp.TopPredictions))
	matched := make([]domain.Profession, 0, len(resp.TopPredictions))
	seen := make(map[int64]bool, len(resp.TopPredictions))

	for _, prediction := range resp.TopPredictions {
		profession, err := m.professions.FindByMLClassCode(ctx, prediction.Major)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Sprintf("failed to resolve ML class code %s", prediction.Major), err)
		}

		rec := domain.Recommendation{
			Score:       prediction.Probability,
			Explanation: templatedExplanation(prediction.Major),
		}
		if profession == nil {
			m.recorder.IncUnresolvedProfession("ml")
			logger.Get().Debug("ML class code has no matching profession", zap.String("major", prediction.Major))
		} else {
			id := profession.ID
			rec.ProfessionID = &id
			if !seen[id] {
				seen[id] = true
				matched = append(matched, *profession)
			}
		}
		recommendations = append(recommendations, rec)
	}

	if m.explainer != nil && len(matched) > 0 {
		m.enrich(ctx, recommendations, matched)
	}
	return recommendations, nil
}

// enrich replaces the explanation of every matched recommendation with the
// generated text, or with FallbackExplanation when there is none.
func (m *MLResultMapper) enrich(ctx context.Context, recommendations []domain.Recommendation, matched []domain.Profession) {
	explanations, err := m.explainer.GenerateExplanations(ctx, matched)
	if err != nil {
		logger.Get().Warn("Explanation generation failed, using fallback text",
			zap.Error(err), zap.Int("professions", len(matched)))
		explanations = nil
	}

	for i := range recommendations {
		if recommendations[i].ProfessionID == nil {
			continue
		}
		text := explanations[*recommendations[i].ProfessionID]
		if text == "" {
			m.recorder.IncExplanationFallback()
			text = FallbackExplanation
		}
		recommendations[i].Explanation = text
	}
}
