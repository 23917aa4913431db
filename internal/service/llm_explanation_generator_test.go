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

func TestGenerateExplanations(t *testing.T) {
	professions := []domain.Profession{
		{ID: 10, Code: "software-engineer", Title: "Software Engineer"},
		{ID: 20, Code: "data-scientist", Title: "Data Scientist"},
	}

	t.Run("parses keyed explanations", func(t *testing.T) {
		transport := new(MockLLMTransport)
		var prompt string
		transport.On("SendPrompt", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { prompt = args.String(1) }).
			Return("```json\n{\"10\": \"You enjoy logic.\", \"20\": \"  \", \"x\": \"ignored\"}\n```", nil)

		explanations, err := NewLLMExplanationGenerator(transport).GenerateExplanations(context.Background(), professions)

		require.NoError(t, err)
		assert.Equal(t, map[int64]string{10: "You enjoy logic."}, explanations)
		assert.Contains(t, prompt, "id=10 code=software-engineer title=Software Engineer")
		assert.Contains(t, prompt, "id=20 code=data-scientist")
	})

	t.Run("no professions skips the call", func(t *testing.T) {
		transport := new(MockLLMTransport)

		explanations, err := NewLLMExplanationGenerator(transport).GenerateExplanations(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, explanations)
		transport.AssertNotCalled(t, "SendPrompt", mock.Anything, mock.Anything)
	})

	t.Run("transport and parse failures", func(t *testing.T) {
		transport := new(MockLLMTransport)
		transport.On("SendPrompt", mock.Anything, mock.Anything).Return("", errors.New("offline")).Once()
		transport.On("SendPrompt", mock.Anything, mock.Anything).Return("no json here", nil).Once()
		generator := NewLLMExplanationGenerator(transport)

		_, err := generator.GenerateExplanations(context.Background(), professions)
		assert.True(t, domain.IsErrorCode(err, domain.CodeLLMServiceError))

		_, err = generator.GenerateExplanations(context.Background(), professions)
		assert.True(t, domain.IsErrorCode(err, domain.CodeLLMParseError))
	})
}
