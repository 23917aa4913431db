package service

import (
	"context"
	"fmt"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"
	"career-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EngineNameML identifies the statistical/ML engine in logs and metrics.
const EngineNameML = "ml"

// MLScoringEngine scores answers with the external classifier and reports
// the trait breakdown from the stored option weights.
type MLScoringEngine struct {
	answers    domain.AnswerRepository
	calculator TraitScorer
	classifier domain.MLClassifier
	mapper     *MLResultMapper
}

// NewMLScoringEngine creates a new MLScoringEngine.
func NewMLScoringEngine(answers domain.AnswerRepository, calculator TraitScorer, classifier domain.MLClassifier, mapper *MLResultMapper) *MLScoringEngine {
	return &MLScoringEngine{
		answers:    answers,
		calculator: calculator,
		classifier: classifier,
		mapper:     mapper,
	}
}

var _ domain.ScoringEngine = (*MLScoringEngine)(nil)

func (e *MLScoringEngine) Name() string { return EngineNameML }

// BuildFeatures validates the answer count and maps each Likert value a to (a-1)/4.
func BuildFeatures(answers []int) ([]float64, error) {
	if len(answers) != domain.RequiredAnswerCount {
		return nil, domain.NewInvalidAnswerCountError(len(answers))
	}
	features := make([]float64, len(answers))
	for i, a := range answers {
		features[i] = util.NormalizeLikert(a)
	}
	return features, nil
}

// Evaluate predicts from the attempt's stored answers. The trait aggregation
// and the classifier call run concurrently; either failure fails the call.
func (e *MLScoringEngine) Evaluate(ctx context.Context, attemptID int64) (*domain.ScoringResult, error) {
	values, err := e.answers.FindValuesByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load answers for attempt %d", attemptID), err)
	}
	features, err := BuildFeatures(values)
	if err != nil {
		return nil, err
	}

	var (
		traits     domain.TraitScores
		prediction *domain.MLResultResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		traits, err = e.calculator.CalculateScores(gctx, attemptID)
		return err
	})
	g.Go(func() error {
		var err error
		prediction, err = e.predict(gctx, features)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recommendations, err := e.mapper.ToRecommendations(ctx, prediction)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("ML evaluation finished",
		zap.Int64("attemptID", attemptID),
		zap.String("predictedMajor", prediction.PredictedMajor),
		zap.Int("traits", len(traits)),
		zap.Int("recommendations", len(recommendations)))
	return domain.NewScoringResult(traits, recommendations), nil
}

// EvaluateRaw predicts from raw answers. No weight linkage exists without an
// attempt, so the trait map is always empty.
func (e *MLScoringEngine) EvaluateRaw(ctx context.Context, answers []int) (*domain.ScoringResult, error) {
	features, err := BuildFeatures(answers)
	if err != nil {
		return nil, err
	}
	prediction, err := e.predict(ctx, features)
	if err != nil {
		return nil, err
	}
	recommendations, err := e.mapper.ToRecommendations(ctx, prediction)
	if err != nil {
		return nil, err
	}
	return domain.NewScoringResult(nil, recommendations), nil
}

func (e *MLScoringEngine) predict(ctx context.Context, features []float64) (*domain.MLResultResponse, error) {
	prediction, err := e.classifier.Predict(ctx, features)
	if err != nil {
		return nil, domain.NewMLServiceError(err)
	}
	return prediction, nil
}
