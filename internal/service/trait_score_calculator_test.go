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

var (
	traitR = domain.Trait{ID: 1, Code: "R", Name: "Realistic"}
	traitI = domain.Trait{ID: 2, Code: "I", Name: "Investigative"}
	traitA = domain.Trait{ID: 3, Code: "A", Name: "Artistic"}
)

func TestCalculateScores_EmptyAttempt(t *testing.T) {
	weights := new(MockTraitWeightRepository)
	weights.On("SelectedWeightSums", mock.Anything, int64(1)).Return([]domain.TraitWeightSum{}, nil)

	scores, err := NewTraitScoreCalculator(weights).CalculateScores(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
	weights.AssertNotCalled(t, "MaxWeightSums", mock.Anything, mock.Anything)
}

func TestCalculateScores_NormalizesAgainstTouchedQuestions(t *testing.T) {
	weights := new(MockTraitWeightRepository)
	weights.On("SelectedWeightSums", mock.Anything, int64(7)).Return([]domain.TraitWeightSum{
		{Trait: traitR, Sum: 3},
		{Trait: traitI, Sum: 1},
		{Trait: traitA, Sum: 2},
	}, nil)
	weights.On("MaxWeightSums", mock.Anything, int64(7)).Return([]domain.TraitWeightSum{
		{Trait: traitR, Sum: 3},
		{Trait: traitI, Sum: 3},
		{Trait: traitA, Sum: 3},
		{Trait: domain.Trait{ID: 4, Code: "S"}, Sum: 5},
	}, nil)

	scores, err := NewTraitScoreCalculator(weights).CalculateScores(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 1.0, scores["R"].Score)
	assert.Equal(t, 0.3333, scores["I"].Score)
	assert.Equal(t, 0.6667, scores["A"].Score)
	assert.Equal(t, traitA, scores["A"].Trait)
	_, touched := scores["S"]
	assert.False(t, touched, "a trait no selected option reaches must be absent")
	weights.AssertExpectations(t)
}

func TestCalculateScores_ZeroMaximumScoresZero(t *testing.T) {
	weights := new(MockTraitWeightRepository)
	weights.On("SelectedWeightSums", mock.Anything, int64(2)).Return([]domain.TraitWeightSum{{Trait: traitR, Sum: 0}}, nil)
	weights.On("MaxWeightSums", mock.Anything, int64(2)).Return([]domain.TraitWeightSum{}, nil)

	scores, err := NewTraitScoreCalculator(weights).CalculateScores(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 0.0, scores["R"].Score)
}

func TestCalculateScores_BoundedAndDeterministic(t *testing.T) {
	weights := new(MockTraitWeightRepository)
	weights.On("SelectedWeightSums", mock.Anything, int64(3)).Return([]domain.TraitWeightSum{
		{Trait: traitR, Sum: 2.5},
		{Trait: traitI, Sum: 0.1},
		{Trait: traitA, Sum: 7},
	}, nil)
	weights.On("MaxWeightSums", mock.Anything, int64(3)).Return([]domain.TraitWeightSum{
		{Trait: traitR, Sum: 7.5},
		{Trait: traitI, Sum: 0.3},
		{Trait: traitA, Sum: 6},
	}, nil)
	calculator := NewTraitScoreCalculator(weights)

	first, err := calculator.CalculateScores(context.Background(), 3)
	require.NoError(t, err)
	second, err := calculator.CalculateScores(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for code, score := range first {
		assert.GreaterOrEqual(t, score.Score, 0.0, code)
		assert.LessOrEqual(t, score.Score, 1.0, code)
	}
	assert.Equal(t, 1.0, first["A"].Score)
}

func TestCalculateScores_RepositoryErrors(t *testing.T) {
	t.Run("selected sums", func(t *testing.T) {
		weights := new(MockTraitWeightRepository)
		weights.On("SelectedWeightSums", mock.Anything, int64(4)).Return(nil, errors.New("db down"))

		_, err := NewTraitScoreCalculator(weights).CalculateScores(context.Background(), 4)

		assert.True(t, domain.IsErrorCode(err, domain.CodeInternal))
	})

	t.Run("max sums", func(t *testing.T) {
		weights := new(MockTraitWeightRepository)
		weights.On("SelectedWeightSums", mock.Anything, int64(4)).Return([]domain.TraitWeightSum{{Trait: traitR, Sum: 1}}, nil)
		weights.On("MaxWeightSums", mock.Anything, int64(4)).Return(nil, errors.New("db down"))

		_, err := NewTraitScoreCalculator(weights).CalculateScores(context.Background(), 4)

		assert.True(t, domain.IsErrorCode(err, domain.CodeInternal))
	})
}
