// Package ai implements the Gemini reviewer: a raw HTTP client with
// bounded retries and the adapter that turns model output into findings.
package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrorCategory classifies a Gemini failure. Only rate_limit and transient
// are retryable.
type ErrorCategory string

const (
	CategoryAuthFailure     ErrorCategory = "auth_failure"
	CategoryRateLimit       ErrorCategory = "rate_limit"
	CategoryTransient       ErrorCategory = "transient"
	CategoryInvalidResponse ErrorCategory = "invalid_response"
	CategoryInputTooLarge   ErrorCategory = "input_too_large"
	CategoryUnknown         ErrorCategory = "unknown"
)

// Error is a classified Gemini failure.
type Error struct {
	Message    string
	Category   ErrorCategory
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// Retryable reports whether the failure is worth another attempt.
func (e *Error) Retryable() bool {
	return e.Category == CategoryRateLimit || e.Category == CategoryTransient
}

var statusCodeRe = regexp.MustCompile(`\b(\d{3})\b`)

// Classify maps an arbitrary failure to a categorized Error. Errors that are
// already classified pass through unchanged.
func Classify(err error) *Error {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr
	}

	message := err.Error()
	lower := strings.ToLower(message)

	statusCode := 0
	if m := statusCodeRe.FindString(message); m != "" {
		statusCode, _ = strconv.Atoi(m)
	}

	switch {
	case strings.Contains(message, "API key") || strings.Contains(message, "401") || strings.Contains(message, "403"):
		return &Error{Message: fmt.Sprintf("Gemini auth failure: %s", message), Category: CategoryAuthFailure, StatusCode: statusCode}
	case strings.Contains(message, "429") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "quota"):
		return &Error{Message: fmt.Sprintf("Gemini rate limited: %s", message), Category: CategoryRateLimit, StatusCode: 429}
	case statusCode >= 500:
		return &Error{Message: fmt.Sprintf("Gemini server error: %s", message), Category: CategoryTransient, StatusCode: statusCode}
	case errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(lower, "timeout") || strings.Contains(lower, "abort") || strings.Contains(lower, "connection reset"):
		return &Error{Message: fmt.Sprintf("Gemini timeout: %s", message), Category: CategoryTransient}
	default:
		return &Error{Message: fmt.Sprintf("Gemini error: %s", message), Category: CategoryUnknown, StatusCode: statusCode}
	}
}
