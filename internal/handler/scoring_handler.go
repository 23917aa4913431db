package handler

import (
	"career-quiz/internal/domain"
	"career-quiz/internal/dto"
	"career-quiz/internal/logger"
	"career-quiz/internal/middleware"
	"career-quiz/internal/service"
	"career-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ScoringHandler handles evaluation HTTP requests
type ScoringHandler struct {
	service   service.EvaluationService
	validator *validation.Validator
}

// NewScoringHandler creates a new ScoringHandler instance
func NewScoringHandler(service service.EvaluationService) *ScoringHandler {
	return &ScoringHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// EvaluateAttempt godoc
// @Summary Evaluate a quiz attempt
// @Description Scores a persisted attempt with the engine configured on its quiz version
// @Tags scoring
// @Produce json
// @Param attemptId path int true "Attempt ID"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /scoring/attempts/{attemptId}/evaluate [post]
func (h *ScoringHandler) EvaluateAttempt(c *fiber.Ctx) error {
	attemptID, ok := c.Locals(middleware.ValidatedAttemptIDKey).(int64)
	if !ok {
		id, errs := h.validator.ParseAttemptID(c.Params("attemptId"))
		if len(errs) > 0 {
			return errs
		}
		attemptID = id
	}

	result, err := h.service.EvaluateAttempt(c.UserContext(), attemptID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEvaluationResponse(result))
}

// EvaluateRaw godoc
// @Summary Evaluate raw answers
// @Description Scores 48 Likert values (1-5) without a persisted attempt
// @Tags scoring
// @Accept json
// @Produce json
// @Param request body dto.RawEvaluationRequest true "Mode and answers"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /scoring/evaluate [post]
func (h *ScoringHandler) EvaluateRaw(c *fiber.Ctx) error {
	var req dto.RawEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Invalid evaluation body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateRawEvaluation(req.Mode, req.Answers); len(errs) > 0 {
		return errs
	}

	result, err := h.service.EvaluateRaw(c.UserContext(), domain.NormalizeProcessingMode(req.Mode), req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEvaluationResponse(result))
}

// GetResult godoc
// @Summary Get a stored evaluation
// @Description Returns an evaluation by the result id issued when it was computed
// @Tags scoring
// @Produce json
// @Param resultId path string true "Result ID (ULID)"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /scoring/results/{resultId} [get]
func (h *ScoringHandler) GetResult(c *fiber.Ctx) error {
	resultID, ok := c.Locals(middleware.ValidatedResultIDKey).(string)
	if !ok {
		resultID = c.Params("resultId")
		if errs := h.validator.ValidateResultID(resultID); len(errs) > 0 {
			return errs
		}
	}

	result, err := h.service.GetResult(c.UserContext(), resultID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEvaluationResponse(result))
}
