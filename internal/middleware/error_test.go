package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"career-quiz/internal/domain"
	"career-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{name: "answer count", err: domain.NewInvalidAnswerCountError(47), expectedCode: 400, expectedBody: "INVALID_ANSWER_COUNT"},
		{name: "attempt not found", err: domain.NewAttemptNotFoundError(9), expectedCode: 404, expectedBody: "ATTEMPT_NOT_FOUND"},
		{name: "result not found", err: domain.NewResultNotFoundError("x"), expectedCode: 404, expectedBody: "RESULT_NOT_FOUND"},
		{name: "ml service", err: domain.NewMLServiceError(errors.New("503")), expectedCode: 502, expectedBody: "ML_SERVICE_ERROR"},
		{name: "llm service", err: domain.NewLLMServiceError(errors.New("timeout")), expectedCode: 502, expectedBody: "LLM_SERVICE_ERROR"},
		{name: "llm parse", err: domain.NewLLMParseError("secret model text", errors.New("bad json")), expectedCode: 502, expectedBody: "LLM_RESPONSE_PARSE_ERROR"},
		{name: "validation", err: domain.ValidationErrors{domain.NewMissingFieldError("mode")}, expectedCode: 400, expectedBody: "VALIDATION_ERROR"},
		{name: "fiber", err: fiber.ErrMethodNotAllowed, expectedCode: 405, expectedBody: "HTTP_ERROR"},
		{name: "unknown", err: errors.New("boom"), expectedCode: 500, expectedBody: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.Equal(t, tt.expectedBody, body["code"])
			assert.NotContains(t, body, "raw_response")
			if details, ok := body["details"].(map[string]interface{}); ok {
				assert.NotContains(t, details, domain.ContextKeyRawResponse)
			}
		})
	}
}

func TestErrorHandler_AnswerCountDetails(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return domain.NewInvalidAnswerCountError(3) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(48), body.Details["expected"])
	assert.Equal(t, float64(3), body.Details["actual"])
}
