package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MsgMalformedBody is returned when the body is not a JSON object of the
// expected shape.
const MsgMalformedBody = "malformed request body"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,max=128"`)
// - Implement Validate() error that runs validator.Struct(req)
type Validatable interface {
	Validate() error
}

// Messages are the client-facing messages for one payload type.
type Messages struct {
	// Missing is used when the body is absent (empty or JSON null).
	Missing string
	// Required is used when any field fails its `required` rule.
	Required string
	// TooLong is used when a field fails its `max` rule.
	TooLong string
}

// DecodeBody reads the request body into dst. present is false when the body
// is empty or the JSON literal null; dst is left untouched in that case.
func DecodeBody(c echo.Context, dst any) (present bool, err error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return false, errors.Wrap(err, "failed to read request body")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return true, errors.Wrap(err, "failed to decode request body")
	}

	return true, nil
}

// DecodeAndValidate decodes the body into payload and runs its rules.
//
// Checks run in a fixed order and the first failure wins:
//  1. body presence -> msgs.Missing
//  2. JSON shape -> MsgMalformedBody
//  3. any `required` rule -> msgs.Required
//  4. any `max` rule -> msgs.TooLong
//
// Every failure is a 400 *errs.HTTPError; field errors are attached for logs.
func DecodeAndValidate(c echo.Context, payload Validatable, msgs Messages) error {
	present, err := DecodeBody(c, payload)
	if !present && err == nil {
		return errs.NewBadRequestError(msgs.Missing, true, nil, nil)
	}
	if err != nil {
		return errs.NewBadRequestError(MsgMalformedBody, true, nil, nil).WithCause(err)
	}

	if err := payload.Validate(); err != nil {
		return validationFailure(err, msgs)
	}

	return nil
}

func validationFailure(err error, msgs Messages) *errs.HTTPError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.ValidationError(err)
	}

	fieldErrors := extractValidationError(validationErrors)

	message := ""
	for _, tag := range []string{"required", "max"} {
		if hasTag(validationErrors, tag) {
			message = messageFor(tag, msgs)
			break
		}
	}
	if message == "" {
		return errs.NewBadRequestError("Validation failed", false, nil, fieldErrors).WithCause(err)
	}

	return errs.NewBadRequestError(message, true, nil, fieldErrors).WithCause(err)
}

func messageFor(tag string, msgs Messages) string {
	switch tag {
	case "required":
		return msgs.Required
	case "max":
		return msgs.TooLong
	}
	return ""
}

func hasTag(validationErrors validator.ValidationErrors, tag string) bool {
	for _, fe := range validationErrors {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// extractValidationError converts validator.ValidationErrors into
// field-level errors.
func extractValidationError(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "max":
			// for strings max is a length in runes, for numbers a value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
