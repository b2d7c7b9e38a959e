package routes

import (
	"Backend-FormDesk/src/controllers"
	"Backend-FormDesk/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// Controllers bundles every handler group so InitRoutes only needs a single
// argument from main.
type Controllers struct {
	Auth       *controllers.AuthController
	Form       *controllers.FormController
	Submission *controllers.SubmissionController
	Payment    *controllers.PaymentController
	Export     *controllers.ExportController
	File       *controllers.FileController
}

// InitRoutes mounts every module's routes on the app. Admin-only routes go
// through the JWT middleware; public intake and webhook routes do not.
func InitRoutes(app *fiber.App, ctrl Controllers, jwtSecret []byte) {
	protect := middleware.AuthJWT(jwtSecret)

	authRoutes(app, ctrl.Auth)
	formRoutes(app, ctrl.Form, protect)
	submissionRoutes(app, ctrl.Submission, protect)
	paymentRoutes(app, ctrl.Payment)
	exportRoutes(app, ctrl.Export, protect)
	fileRoutes(app, ctrl.File)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
