// Package apperrors defines the coded error taxonomy shared by the intake
// and payment pipelines. Services return these; controllers map them to
// HTTP without leaking internals.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeDuplicateValue     Code = "DUPLICATE_VALUE"
	CodeNotFound           Code = "NOT_FOUND"
	CodeTemplateClosed     Code = "TEMPLATE_CLOSED"
	CodePaymentNotRequired Code = "PAYMENT_NOT_REQUIRED"
	CodeOrderSettled       Code = "ORDER_SETTLED"
	CodeInvalidSignature   Code = "INVALID_SIGNATURE"
	CodeMalformedPayload   Code = "MALFORMED_PAYLOAD"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

// Error is a structured application error. Fields carries the full
// per-field message map for validation failures so the client gets every
// problem in one response.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error code to the status the boundary should reply with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidationFailed, CodeTemplateClosed, CodePaymentNotRequired, CodeInvalidSignature, CodeMalformedPayload:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateValue, CodeOrderSettled:
		return fiber.StatusConflict
	case CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Retryable reports whether the whole request is safe to retry from the
// client. Only transient infra faults qualify, since nothing partial is
// ever persisted on that path.
func (e *Error) Retryable() bool {
	return e.Code == CodeUnavailable
}

func ValidationFailed(fields map[string]string) *Error {
	return &Error{Code: CodeValidationFailed, Message: "Validation failed", Fields: fields}
}

func DuplicateValue(field string) *Error {
	return &Error{
		Code:    CodeDuplicateValue,
		Message: fmt.Sprintf("%s has already been used in this form", field),
		Fields:  map[string]string{field: "duplicate value"},
	}
}

func NotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func TemplateClosed(name string) *Error {
	return &Error{Code: CodeTemplateClosed, Message: fmt.Sprintf("form %q is not accepting submissions", name)}
}

func PaymentNotRequired() *Error {
	return &Error{Code: CodePaymentNotRequired, Message: "Payment is not required for this form"}
}

func OrderSettled(status string) *Error {
	return &Error{Code: CodeOrderSettled, Message: fmt.Sprintf("payment already %s for this submission", status)}
}

func InvalidSignature() *Error {
	return &Error{Code: CodeInvalidSignature, Message: "Invalid signature"}
}

func MalformedPayload() *Error {
	return &Error{Code: CodeMalformedPayload, Message: "Malformed payload"}
}

func Unavailable(err error) *Error {
	return &Error{Code: CodeUnavailable, Message: "Service temporarily unavailable", Err: err}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// As extracts an *Error from any error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
