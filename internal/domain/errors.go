package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Scoring specific errors
	CodeAttemptNotFound    ErrorCode = "ATTEMPT_NOT_FOUND"
	CodeInvalidAnswerCount ErrorCode = "INVALID_ANSWER_COUNT"
	CodeMLServiceError     ErrorCode = "ML_SERVICE_ERROR"
	CodeLLMServiceError    ErrorCode = "LLM_SERVICE_ERROR"
	CodeLLMParseError      ErrorCode = "LLM_RESPONSE_PARSE_ERROR"
	CodeResultNotFound     ErrorCode = "RESULT_NOT_FOUND"
)

// ContextKeyRawResponse holds the offending model text on LLM parse errors.
const ContextKeyRawResponse = "raw_response"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a diagnostic value and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsErrorCode reports whether err wraps a DomainError with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// RawResponse returns the model text attached to an LLM parse error.
func RawResponse(err error) (string, bool) {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Context == nil {
		return "", false
	}
	raw, ok := domainErr.Context[ContextKeyRawResponse].(string)
	return raw, ok
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewAttemptNotFoundError(attemptID int64) *DomainError {
	return NewError(CodeAttemptNotFound, fmt.Sprintf("Attempt not found with ID: %d", attemptID), nil)
}

func NewInvalidAnswerCountError(got int) *DomainError {
	return NewError(CodeInvalidAnswerCount,
		fmt.Sprintf("Expected exactly %d answers, got %d", RequiredAnswerCount, got), nil).
		WithContext("expected", RequiredAnswerCount).
		WithContext("actual", got)
}

func NewMLServiceError(err error) *DomainError {
	return NewError(CodeMLServiceError, "Failed to get prediction from ML service", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

func NewLLMParseError(raw string, err error) *DomainError {
	return NewError(CodeLLMParseError, "Failed to parse LLM response", err).
		WithContext(ContextKeyRawResponse, raw)
}

func NewResultNotFoundError(resultID string) *DomainError {
	return NewError(CodeResultNotFound, fmt.Sprintf("Scoring result not found with ID: %s", resultID), nil)
}
