// error_utils.go
package utils

import (
	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleError sends a bare status/message error envelope.
func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// RespondError maps a service error onto the HTTP envelope. Client errors
// return their message (and per-field map, if any) verbatim; everything
// else gets a generic message plus a correlation id, with the detail only
// in the server log.
func RespondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	status := appErr.HTTPStatus()
	if status >= fiber.StatusInternalServerError {
		correlationID := uuid.New().String()
		logger.Error("request failed",
			zap.String("correlationId", correlationID),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(models.ErrorResponse{
			Status:        status,
			Message:       "Internal server error",
			CorrelationID: correlationID,
		})
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
