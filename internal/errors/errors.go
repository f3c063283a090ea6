package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an internal message, a user-facing message and reporting metadata.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// NewAccessDeniedError marks a request from a user outside the allow-list.
// Handled locally at the entry point; never reported to Sentry.
func NewAccessDeniedError(userID int64) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     fmt.Sprintf("access denied for user %d", userID),
		UserMessage: "❌ Access denied",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewValidationError marks malformed callback payloads or setting values.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E110",
		Message:     msg,
		UserMessage: "Invalid request. Please use the menu buttons.",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewCollaboratorError marks a failure in one of the external collaborators
// (settings store, catalog loader, purchase executor, messaging platform).
func NewCollaboratorError(name string, cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("%s failure: %s", name, underlyingMsg),
		UserMessage: "⚠️ Something went wrong. Please try again later.",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}

// NewGiftNotFoundError marks a gift id absent from a freshly fetched catalog.
func NewGiftNotFoundError(giftID string) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("gift %s not found in catalog", giftID),
		UserMessage: "⚠️ Gift not found. It is no longer available.",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewRateLimitError marks a request rejected by the rate limiter.
func NewRateLimitError(retryAfter int) *AppError {
	return &AppError{
		Code:        "E500",
		Message:     fmt.Sprintf("rate limit exceeded: retry after %d seconds", retryAfter),
		UserMessage: fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}
