package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-quiz/internal/cache"
	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"go.uber.org/zap"
)

// ErrResultNotFound is returned when a cached result is not found.
var ErrResultNotFound = errors.New("scoring result not found in cache")

// ResultCacheService stores finished evaluations so clients can fetch them by id.
type ResultCacheService interface {
	Put(ctx context.Context, resultID string, result *domain.EvaluationResult) error
	Get(ctx context.Context, resultID string) (*domain.EvaluationResult, error)
}

type resultCacheServiceImpl struct {
	cache    domain.Cache
	ttl      time.Duration
	recorder ScoringRecorder
}

// NewResultCacheService creates a cache-backed ResultCacheService. A nil cache
// yields a no-op implementation.
func NewResultCacheService(c domain.Cache, ttl time.Duration, recorder ScoringRecorder) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl, recorder: recorderOrNoop(recorder)}
}

func (s *resultCacheServiceImpl) generateKey(resultID string) string {
	return cache.ResultKey(resultID)
}

// Put stores the evaluation result under resultID.
func (s *resultCacheServiceImpl) Put(ctx context.Context, resultID string, result *domain.EvaluationResult) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := s.generateKey(resultID)
	dataBytes, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		s.recorder.IncResultCache("put", "error")
		logger.Get().Error("Failed to cache scoring result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set scoring result to cache for key %s", key), err)
	}
	s.recorder.IncResultCache("put", "ok")
	logger.Get().Debug("Cached scoring result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get retrieves a stored evaluation result. A miss returns ErrResultNotFound.
func (s *resultCacheServiceImpl) Get(ctx context.Context, resultID string) (*domain.EvaluationResult, error) {
	key := s.generateKey(resultID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			s.recorder.IncResultCache("get", "miss")
			return nil, ErrResultNotFound
		}
		s.recorder.IncResultCache("get", "error")
		logger.Get().Error("Failed to get scoring result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get scoring result from cache for key %s", key), err)
	}
	if dataString == "" {
		s.recorder.IncResultCache("get", "miss")
		return nil, ErrResultNotFound
	}

	var result domain.EvaluationResult
	if err := json.Unmarshal([]byte(dataString), &result); err != nil {
		s.recorder.IncResultCache("get", "error")
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal scoring result from cache for key %s", key), err)
	}
	s.recorder.IncResultCache("get", "hit")
	return &result, nil
}

type noopResultCacheService struct{}

func (s *noopResultCacheService) Put(ctx context.Context, resultID string, result *domain.EvaluationResult) error {
	logger.Get().Debug("No-op ResultCacheService: Put called", zap.String("resultID", resultID))
	return nil
}

func (s *noopResultCacheService) Get(ctx context.Context, resultID string) (*domain.EvaluationResult, error) {
	return nil, ErrResultNotFound
}
