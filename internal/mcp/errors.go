package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to
// INTERNAL_ERROR.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var validation *fault.ValidationError
	switch {
	case errors.Is(err, fault.ErrFaultNotFound):
		return &APIError{Code: "FAULT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Use query_faults to find valid ids"}
	case errors.As(err, &validation):
		return &APIError{
			Code:         "VALIDATION_FAILED",
			Message:      err.Error(),
			Details:      map[string]string{"field": validation.Field, "reason": validation.Reason},
			RecoveryHint: "Fix the named field and retry",
		}
	case errors.Is(err, fault.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Use pending, in_progress or completed"}
	case errors.Is(err, query.ErrInvalidSpec):
		return &APIError{Code: "INVALID_QUERY", Message: err.Error(), RecoveryHint: "Check filter values and sort key"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error(), RecoveryHint: "Provide a non-empty actor and note"}
	default:
		return &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
	}
}
