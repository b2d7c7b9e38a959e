package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func exportRoutes(app *fiber.App, ec *controllers.ExportController, protect fiber.Handler) {
	exports := app.Group("/exports")

	exports.Get("/forms/excel", protect, ec.FormsExcel)
	exports.Get("/submissions/:formId/excel", protect, ec.SubmissionsExcel)
	// The receipt belongs to the submitter, so it stays public.
	exports.Get("/receipt/:submissionId", ec.Receipt)
}
