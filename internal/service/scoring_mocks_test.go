package service

import (
	"context"
	"time"

	"career-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) FindValuesByAttemptID(ctx context.Context, attemptID int64) ([]int, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockAnswerRepository) FindByAttemptID(ctx context.Context, attemptID int64) ([]domain.AnswerDetail, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerDetail), args.Error(1)
}

// --- MockTraitWeightRepository ---
type MockTraitWeightRepository struct {
	mock.Mock
}

func (m *MockTraitWeightRepository) SelectedWeightSums(ctx context.Context, attemptID int64) ([]domain.TraitWeightSum, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TraitWeightSum), args.Error(1)
}

func (m *MockTraitWeightRepository) MaxWeightSums(ctx context.Context, attemptID int64) ([]domain.TraitWeightSum, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TraitWeightSum), args.Error(1)
}

// --- MockTraitRepository ---
type MockTraitRepository struct {
	mock.Mock
}

func (m *MockTraitRepository) FindByCode(ctx context.Context, code string) (*domain.Trait, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trait), args.Error(1)
}

func (m *MockTraitRepository) FindAll(ctx context.Context) ([]domain.Trait, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trait), args.Error(1)
}

// --- MockProfessionRepository ---
type MockProfessionRepository struct {
	mock.Mock
}

func (m *MockProfessionRepository) FindByID(ctx context.Context, id int64) (*domain.Profession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profession), args.Error(1)
}

func (m *MockProfessionRepository) FindByMLClassCode(ctx context.Context, code string) (*domain.Profession, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profession), args.Error(1)
}

func (m *MockProfessionRepository) FindAll(ctx context.Context) ([]domain.Profession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profession), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) FindByID(ctx context.Context, attemptID int64) (*domain.Attempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

// --- MockMLClassifier ---
type MockMLClassifier struct {
	mock.Mock
}

func (m *MockMLClassifier) Predict(ctx context.Context, features []float64) (*domain.MLResultResponse, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MLResultResponse), args.Error(1)
}

// --- MockLLMTransport ---
type MockLLMTransport struct {
	mock.Mock
}

func (m *MockLLMTransport) SendPrompt(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockTraitScorer ---
type MockTraitScorer struct {
	mock.Mock
}

func (m *MockTraitScorer) CalculateScores(ctx context.Context, attemptID int64) (domain.TraitScores, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.TraitScores), args.Error(1)
}

// --- MockExplanationGenerator ---
type MockExplanationGenerator struct {
	mock.Mock
}

func (m *MockExplanationGenerator) GenerateExplanations(ctx context.Context, professions []domain.Profession) (map[int64]string, error) {
	args := m.Called(ctx, professions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

// --- MockScoringEngine ---
type MockScoringEngine struct {
	mock.Mock
	name string
}

func (m *MockScoringEngine) Evaluate(ctx context.Context, attemptID int64) (*domain.ScoringResult, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoringResult), args.Error(1)
}

func (m *MockScoringEngine) EvaluateRaw(ctx context.Context, answers []int) (*domain.ScoringResult, error) {
	args := m.Called(ctx, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoringResult), args.Error(1)
}

func (m *MockScoringEngine) Name() string { return m.name }

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockResultCacheService ---
type MockResultCacheService struct {
	mock.Mock
}

func (m *MockResultCacheService) Put(ctx context.Context, resultID string, result *domain.EvaluationResult) error {
	args := m.Called(ctx, resultID, result)
	return args.Error(0)
}

func (m *MockResultCacheService) Get(ctx context.Context, resultID string) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}

// --- recordingRecorder counts recorder calls ---
type recordingRecorder struct {
	evaluations   []string
	parseFailures int
	unresolved    map[string]int
	fallbacks     int
	cacheOps      []string
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{unresolved: map[string]int{}}
}

func (r *recordingRecorder) ObserveEvaluation(engine string, err error, _ time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.evaluations = append(r.evaluations, engine+":"+outcome)
}

func (r *recordingRecorder) IncLLMParseFailure() { r.parseFailures++ }

func (r *recordingRecorder) IncUnresolvedProfession(source string) { r.unresolved[source]++ }

func (r *recordingRecorder) IncExplanationFallback() { r.fallbacks++ }

func (r *recordingRecorder) IncResultCache(operation, outcome string) {
	r.cacheOps = append(r.cacheOps, operation+":"+outcome)
}
