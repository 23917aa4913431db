package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"career-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation() *domain.EvaluationResult {
	id := int64(10)
	attemptID := int64(3)
	return &domain.EvaluationResult{
		ResultID:  "01HZX",
		AttemptID: &attemptID,
		Mode:      domain.ProcessingModeML,
		Engine:    EngineNameML,
		Result: domain.NewScoringResult(
			domain.TraitScores{"R": {Trait: traitR, Score: 0.5}},
			[]domain.Recommendation{{ProfessionID: &id, Score: 0.8, Explanation: "Predicted as: SE"}},
		),
		EvaluatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestResultCacheService_PutAndGet(t *testing.T) {
	c := new(MockCache)
	recorder := newRecordingRecorder()
	svc := NewResultCacheService(c, time.Hour, recorder)
	result := sampleEvaluation()
	key := "careerquiz:scoring:result:01HZX"

	var stored string
	c.On("Set", mock.Anything, key, mock.AnythingOfType("string"), time.Hour).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(nil)
	require.NoError(t, svc.Put(context.Background(), "01HZX", result))

	c.On("Get", mock.Anything, key).Return(stored, nil)
	got, err := svc.Get(context.Background(), "01HZX")

	require.NoError(t, err)
	assert.Equal(t, result, got)
	assert.Equal(t, []string{"put:ok", "get:hit"}, recorder.cacheOps)
}

func TestResultCacheService_Get(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		err      error
		wantErr  error
		wantCode domain.ErrorCode
	}{
		{name: "miss", err: domain.ErrCacheMiss, wantErr: ErrResultNotFound},
		{name: "empty", value: "", wantErr: ErrResultNotFound},
		{name: "backend error", err: errors.New("redis down"), wantCode: domain.CodeInternal},
		{name: "corrupt payload", value: "{not json", wantCode: domain.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(MockCache)
			c.On("Get", mock.Anything, mock.Anything).Return(tt.value, tt.err)

			got, err := NewResultCacheService(c, time.Hour, nil).Get(context.Background(), "x")

			assert.Nil(t, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.True(t, domain.IsErrorCode(err, tt.wantCode))
			}
		})
	}
}

func TestResultCacheService_PutErrors(t *testing.T) {
	c := new(MockCache)
	svc := NewResultCacheService(c, time.Hour, nil)

	err := svc.Put(context.Background(), "x", nil)
	assert.True(t, domain.IsErrorCode(err, domain.CodeInvalidInput))

	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	err = svc.Put(context.Background(), "x", sampleEvaluation())
	assert.True(t, domain.IsErrorCode(err, domain.CodeInternal))
}

func TestResultCacheService_NilCacheIsNoop(t *testing.T) {
	svc := NewResultCacheService(nil, time.Hour, nil)

	assert.NoError(t, svc.Put(context.Background(), "x", sampleEvaluation()))
	_, err := svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestEvaluationResult_JSONShape(t *testing.T) {
	data, err := json.Marshal(sampleEvaluation())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "01HZX", decoded["result_id"])
	assert.Equal(t, "ML", decoded["mode"])
	result := decoded["result"].(map[string]interface{})
	assert.Contains(t, result, "trait_scores")
	assert.Contains(t, result, "recommendations")
}
