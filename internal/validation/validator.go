package validation

import (
	"fmt"
	"strconv"
	"strings"

	"career-quiz/internal/domain"

	"github.com/oklog/ulid/v2"
)

const (
	minLikert = 1
	maxLikert = 5
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ParseAttemptID validates and parses an attempt id path parameter.
func (v *Validator) ParseAttemptID(raw string) (int64, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("attemptId")}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("attemptId", raw)}
	}
	return id, nil
}

// ValidateResultID checks that a result id is a ULID.
func (v *Validator) ValidateResultID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("resultId")}
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("resultId", id)}
	}
	return nil
}

// ValidateRawEvaluation checks the body of a stateless evaluation. The answer
// count is left to the engines, which report it as INVALID_ANSWER_COUNT.
func (v *Validator) ValidateRawEvaluation(mode string, answers []int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(mode) == "" {
		errors = append(errors, domain.NewMissingFieldError("mode"))
	}
	if answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	for i, a := range answers {
		if a < minLikert || a > maxLikert {
			errors = append(errors, domain.NewOutOfRangeError(fmt.Sprintf("answers[%d]", i), a, minLikert, maxLikert))
		}
	}

	return errors
}
