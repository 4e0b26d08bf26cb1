// Package errors provides unified error handling for the latency estimator.
// It implements structured error types with error codes, HTTP status mapping,
// and an RFC 7807-style response envelope.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried. Estimation is
	// deterministic, so every domain error is non-retryable.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Domain Error Constructors ---

// Configuration creates an AppError for invalid resource or component
// parameters (e.g. a non-positive rate-determining hardware field).
func Configuration(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("Invalid configuration for %s: %s", field, reason),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// DuplicateName creates an AppError for registering a component name twice.
func DuplicateName(component string) *AppError {
	return &AppError{
		Code: ErrCodeDuplicateName, Message: fmt.Sprintf("Component %q is already registered.", component),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"component": component},
	}
}

// MissingDependency creates an AppError for a dependency name that does not
// resolve to a registered component.
func MissingDependency(component, dependency string) *AppError {
	return &AppError{
		Code: ErrCodeMissingDependency, Message: fmt.Sprintf("Component %q depends on %q, which is not registered.", component, dependency),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"component": component, "dependency": dependency},
	}
}

// CyclicDependency creates an AppError carrying the offending cycle as an
// ordered component name list.
func CyclicDependency(cycle []string) *AppError {
	return &AppError{
		Code: ErrCodeCyclicDependency, Message: fmt.Sprintf("Dependency cycle detected: %s", strings.Join(cycle, " -> ")),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"cycle": cycle},
	}
}

// ShapeMismatch creates an AppError for a timing function whose output length
// disagrees with the component's agenda length.
func ShapeMismatch(component string, expected, actual int) *AppError {
	return &AppError{
		Code: ErrCodeShapeMismatch, Message: fmt.Sprintf("Component %q returned %d timing groups, agenda expects %d.", component, actual, expected),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"component": component, "expected": expected, "actual": actual},
	}
}

// InputShapeMismatch reports a start-times slice whose length disagrees
// with the agenda it accompanies.
func InputShapeMismatch(expected, actual int) *AppError {
	return &AppError{
		Code: ErrCodeShapeMismatch, Message: fmt.Sprintf("Got %d start times for %d agenda groups.", actual, expected),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"expected": expected, "actual": actual},
	}
}

// ComponentExecution wraps a failure raised inside a timing function.
// group is the 0-indexed agenda group where the failure was detected, or -1
// when it could not be determined.
func ComponentExecution(component string, group int, cause error) *AppError {
	details := map[string]any{"component": component}
	if group >= 0 {
		details["group"] = group
	}
	return &AppError{
		Code: ErrCodeComponentExecution, Message: fmt.Sprintf("Timing function for component %q failed.", component),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details, Cause: cause,
	}
}

// InvalidState creates an AppError for an operation invoked in the wrong
// pipeline lifecycle state.
func InvalidState(operation, state string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidState, Message: fmt.Sprintf("Operation %q requires a different pipeline state (current: %s).", operation, state),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"operation": operation, "state": state},
	}
}

// --- Generic Error Constructors ---

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// AlreadyExists creates an AppError for a resource that already exists.
func AlreadyExists(resource, id string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("A %s named %q already exists.", resource, id),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"resource": resource, "id": id},
	}
}

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// Internal creates an AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
