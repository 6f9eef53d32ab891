package errs

import "strings"

// FieldError represents a field-level error. It is logged by the global error
// handler and never part of the response body.
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "name").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), used in logs.
//   - Message: the text written to the client as {"message": ...}.
//   - Status: HTTP status code.
//   - Override: the message is safe to show even for driver-derived errors.
//   - Errors: list of per-field errors.
//
// The underlying cause, if any, is kept out of the JSON and only reaches logs.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`

	cause error
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// It returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It returns true if `target` is also a *HTTPError. It does NOT compare
// Code/Status; it only checks the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// Unwrap exposes the cause attached with WithCause.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Cause returns the error attached with WithCause, or nil.
func (e *HTTPError) Cause() error {
	return e.cause
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
//
// Useful if you have a base error template and want to customize message
// without mutating the original.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		cause:    e.cause,
	}
}

// WithCause returns a copy of this HTTPError that records err as the cause.
// The cause is logged but never written to the client.
func (e *HTTPError) WithCause(err error) *HTTPError {
	clone := e.WithMessage(e.Message)
	clone.cause = err
	return clone
}

// Response is the JSON body for every error and for plain message replies.
//
//	{ "message": "invalid project id" }
type Response struct {
	Message string `json:"message"`
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
