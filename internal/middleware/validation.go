package middleware

import (
	"career-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	ValidatedAttemptIDKey = "validated_attempt_id"
	ValidatedResultIDKey  = "validated_result_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateAttemptID parses the attemptId path parameter into an int64 local.
func (vm *ValidationMiddleware) ValidateAttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errors := vm.validator.ParseAttemptID(c.Params("attemptId"))
		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedAttemptIDKey, id)
		return c.Next()
	}
}

// ValidateResultID checks the resultId path parameter.
func (vm *ValidationMiddleware) ValidateResultID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("resultId")
		if errors := vm.validator.ValidateResultID(id); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedResultIDKey, id)
		return c.Next()
	}
}
