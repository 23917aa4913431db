package service

import (
	"context"
	"errors"
	"testing"

	"career-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToRecommendations_EmptyPredictions(t *testing.T) {
	professions := new(MockProfessionRepository)
	mapper := NewMLResultMapper(professions, nil)

	recs, err := mapper.ToRecommendations(context.Background(), &domain.MLResultResponse{TopPredictions: []domain.MLPrediction{}})

	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	professions.AssertNotCalled(t, "FindByMLClassCode", mock.Anything, mock.Anything)
}

func TestToRecommendations_UnmatchedMajorKept(t *testing.T) {
	professions := new(MockProfessionRepository)
	professions.On("FindByMLClassCode", mock.Anything, "SE").Return(&domain.Profession{ID: 10, Code: "software-engineer"}, nil)
	professions.On("FindByMLClassCode", mock.Anything, "XX").Return(nil, nil)
	recorder := newRecordingRecorder()
	mapper := NewMLResultMapper(professions, recorder)

	recs, err := mapper.ToRecommendations(context.Background(), &domain.MLResultResponse{
		TopPredictions: []domain.MLPrediction{{Major: "XX", Probability: 0.42}, {Major: "SE", Probability: 0.3}},
	})

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[0].ProfessionID)
	assert.Equal(t, 0.42, recs[0].Score)
	assert.Equal(t, "Predicted as: XX", recs[0].Explanation)
	require.NotNil(t, recs[1].ProfessionID)
	assert.Equal(t, int64(10), *recs[1].ProfessionID)
	assert.Equal(t, "Predicted as: SE", recs[1].Explanation)
	assert.Equal(t, 1, recorder.unresolved["ml"])
}

func TestToRecommendations_LookupError(t *testing.T) {
	professions := new(MockProfessionRepository)
	professions.On("FindByMLClassCode", mock.Anything, "SE").Return(nil, errors.New("db down"))

	_, err := NewMLResultMapper(professions, nil).ToRecommendations(context.Background(), &domain.MLResultResponse{
		TopPredictions: []domain.MLPrediction{{Major: "SE", Probability: 0.8}},
	})

	assert.True(t, domain.IsErrorCode(err, domain.CodeInternal))
}

func TestToRecommendations_Enriched(t *testing.T) {
	se := &domain.Profession{ID: 10, Code: "software-engineer", Title: "Software Engineer", MLClassCode: "SE"}
	ds := &domain.Profession{ID: 20, Code: "data-scientist", Title: "Data Scientist", MLClassCode: "DS"}
	prediction := &domain.MLResultResponse{TopPredictions: []domain.MLPrediction{
		{Major: "SE", Probability: 0.8},
		{Major: "DS", Probability: 0.6},
		{Major: "ZZ", Probability: 0.1},
	}}

	newProfessions := func() *MockProfessionRepository {
		professions := new(MockProfessionRepository)
		professions.On("FindByMLClassCode", mock.Anything, "SE").Return(se, nil)
		professions.On("FindByMLClassCode", mock.Anything, "DS").Return(ds, nil)
		professions.On("FindByMLClassCode", mock.Anything, "ZZ").Return(nil, nil)
		return professions
	}

	t.Run("generated text with a gap", func(t *testing.T) {
		explainer := new(MockExplanationGenerator)
		explainer.On("GenerateExplanations", mock.Anything, []domain.Profession{*se, *ds}).
			Return(map[int64]string{10: "You like building things."}, nil)
		recorder := newRecordingRecorder()

		recs, err := NewEnrichedMLResultMapper(newProfessions(), explainer, recorder).ToRecommendations(context.Background(), prediction)

		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "You like building things.", recs[0].Explanation)
		assert.Equal(t, FallbackExplanation, recs[1].Explanation)
		assert.Equal(t, "Predicted as: ZZ", recs[2].Explanation)
		assert.Equal(t, 1, recorder.fallbacks)
		explainer.AssertExpectations(t)
	})

	t.Run("generator unavailable", func(t *testing.T) {
		explainer := new(MockExplanationGenerator)
		explainer.On("GenerateExplanations", mock.Anything, mock.Anything).Return(nil, errors.New("llm offline"))

		recs, err := NewEnrichedMLResultMapper(newProfessions(), explainer, nil).ToRecommendations(context.Background(), prediction)

		require.NoError(t, err)
		assert.Equal(t, FallbackExplanation, recs[0].Explanation)
		assert.Equal(t, FallbackExplanation, recs[1].Explanation)
		assert.Equal(t, 0.6, recs[1].Score)
	})
}
