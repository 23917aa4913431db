package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"
	"career-quiz/internal/util"

	"go.uber.org/zap"
)

// EvaluationService runs the engine chosen for an attempt and stores the result.
type EvaluationService interface {
	EvaluateAttempt(ctx context.Context, attemptID int64) (*domain.EvaluationResult, error)
	EvaluateRaw(ctx context.Context, mode domain.ProcessingMode, answers []int) (*domain.EvaluationResult, error)
	GetResult(ctx context.Context, resultID string) (*domain.EvaluationResult, error)
}

type evaluationServiceImpl struct {
	attempts domain.AttemptRepository
	factory  *ScoringEngineFactory
	results  ResultCacheService
	recorder ScoringRecorder
	now      func() time.Time
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(
	attempts domain.AttemptRepository,
	factory *ScoringEngineFactory,
	results ResultCacheService,
	recorder ScoringRecorder,
) EvaluationService {
	if results == nil {
		results = &noopResultCacheService{}
	}
	return &evaluationServiceImpl{
		attempts: attempts,
		factory:  factory,
		results:  results,
		recorder: recorderOrNoop(recorder),
		now:      time.Now,
	}
}

// EvaluateAttempt scores a persisted attempt with the engine its quiz version is configured for.
func (s *evaluationServiceImpl) EvaluateAttempt(ctx context.Context, attemptID int64) (*domain.EvaluationResult, error) {
	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load attempt %d", attemptID), err)
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}

	engine := s.factory.GetEngine(attempt.ProcessingMode)
	logger.Get().Info("Evaluating attempt",
		zap.Int64("attemptID", attemptID),
		zap.String("mode", string(attempt.ProcessingMode)),
		zap.String("engine", engine.Name()))

	start := s.now()
	result, err := engine.Evaluate(ctx, attemptID)
	s.recorder.ObserveEvaluation(engine.Name(), err, s.now().Sub(start))
	if err != nil {
		return nil, err
	}

	id := attemptID
	return s.store(ctx, &domain.EvaluationResult{
		AttemptID: &id,
		Mode:      attempt.ProcessingMode,
		Engine:    engine.Name(),
		Result:    result,
	}), nil
}

// EvaluateRaw scores answers that are not tied to a persisted attempt.
func (s *evaluationServiceImpl) EvaluateRaw(ctx context.Context, mode domain.ProcessingMode, answers []int) (*domain.EvaluationResult, error) {
	mode = domain.NormalizeProcessingMode(string(mode))
	engine := s.factory.GetEngine(mode)
	logger.Get().Info("Evaluating raw answers",
		zap.String("mode", string(mode)),
		zap.String("engine", engine.Name()),
		zap.Int("answers", len(answers)))

	start := s.now()
	result, err := engine.EvaluateRaw(ctx, answers)
	s.recorder.ObserveEvaluation(engine.Name(), err, s.now().Sub(start))
	if err != nil {
		return nil, err
	}

	return s.store(ctx, &domain.EvaluationResult{
		Mode:   mode,
		Engine: engine.Name(),
		Result: result,
	}), nil
}

// GetResult returns a previously stored evaluation.
func (s *evaluationServiceImpl) GetResult(ctx context.Context, resultID string) (*domain.EvaluationResult, error) {
	result, err := s.results.Get(ctx, resultID)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			return nil, domain.NewResultNotFoundError(resultID)
		}
		return nil, err
	}
	return result, nil
}

// store assigns a result id and caches the result. A cache failure still
// returns the result, without an id.
func (s *evaluationServiceImpl) store(ctx context.Context, result *domain.EvaluationResult) *domain.EvaluationResult {
	result.ResultID = util.NewULID()
	result.EvaluatedAt = s.now().UTC()

	if err := s.results.Put(ctx, result.ResultID, result); err != nil {
		logger.Get().Warn("Scoring result was not cached", zap.Error(err), zap.String("resultID", result.ResultID))
		result.ResultID = ""
	}
	return result
}
