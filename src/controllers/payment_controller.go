package controllers

import (
	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/services/payments"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentController struct {
	payments *payments.Service
	logger   *zap.Logger
}

func NewPaymentController(paySvc *payments.Service, logger *zap.Logger) *PaymentController {
	return &PaymentController{payments: paySvc, logger: logger}
}

// CreateOrder godoc
// @Summary      Create (or return) the gateway order for a submission
// @Tags         payments
// @Produce      json
// @Param        submissionId path string true "Submission ID"
// @Success      200  {object}  models.OrderDetails
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /payments/order/{submissionId} [post]
func (pc *PaymentController) CreateOrder(c *fiber.Ctx) error {
	order, err := pc.payments.CreateOrder(c.Context(), c.Params("submissionId"))
	if err != nil {
		return utils.RespondError(c, pc.logger, err)
	}
	return c.JSON(fiber.Map{"order": order})
}

// Webhook godoc
// @Summary      Payment gateway notification endpoint
// @Description  Verifies the signature over the raw payload and applies the event. The caller is untrusted; replies carry no internal detail.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/webhook [post]
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	raw := c.Body()
	signature := c.Get("X-Razorpay-Signature")

	err := pc.payments.HandleNotification(c.Context(), raw, signature)
	if err == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}

	// Minimal ack/reject only: detail goes to the log, never to the sender.
	switch {
	case apperrors.Is(err, apperrors.CodeInvalidSignature):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "Invalid signature"})
	case apperrors.Is(err, apperrors.CodeMalformedPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "Malformed payload"})
	case apperrors.Is(err, apperrors.CodeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "Submission not found"})
	default:
		pc.logger.Error("webhook processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "Webhook error"})
	}
}
