package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// paymentRoutes mounts order creation and the Razorpay webhook. Both are
// public: the submitter has no session, and the webhook authenticates with
// its HMAC signature instead.
func paymentRoutes(app *fiber.App, pc *controllers.PaymentController) {
	payments := app.Group("/payments")

	payments.Post("/order/:submissionId", pc.CreateOrder)
	payments.Post("/webhook", pc.Webhook)
}
