package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{ValidationFailed(nil), fiber.StatusBadRequest},
		{TemplateClosed("Conference"), fiber.StatusBadRequest},
		{PaymentNotRequired(), fiber.StatusBadRequest},
		{InvalidSignature(), fiber.StatusBadRequest},
		{MalformedPayload(), fiber.StatusBadRequest},
		{NotFound("form"), fiber.StatusNotFound},
		{DuplicateValue("email_address"), fiber.StatusConflict},
		{OrderSettled("Completed"), fiber.StatusConflict},
		{Unavailable(errors.New("mongo down")), fiber.StatusServiceUnavailable},
		{Internal(errors.New("boom")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), "code %s", tc.err.Code)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Unavailable(errors.New("timeout")).Retryable())
	assert.False(t, ValidationFailed(nil).Retryable())
	assert.False(t, DuplicateValue("x").Retryable())
	assert.False(t, Internal(nil).Retryable())
}

func TestValidationFailedCarriesAllFields(t *testing.T) {
	err := ValidationFailed(map[string]string{
		"full_name":     "Full Name is required.",
		"email_address": "Invalid email format.",
	})
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Len(t, err.Fields, 2)
}

func TestAsAndIs(t *testing.T) {
	base := DuplicateValue("aadhaar_number")

	t.Run("DirectError", func(t *testing.T) {
		appErr, ok := As(base)
		assert.True(t, ok)
		assert.Equal(t, CodeDuplicateValue, appErr.Code)
	})

	t.Run("WrappedError", func(t *testing.T) {
		wrapped := fmt.Errorf("pipeline: %w", base)
		assert.True(t, Is(wrapped, CodeDuplicateValue))
		assert.False(t, Is(wrapped, CodeNotFound))
	})

	t.Run("PlainError", func(t *testing.T) {
		_, ok := As(errors.New("plain"))
		assert.False(t, ok)
	})
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unavailable(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
