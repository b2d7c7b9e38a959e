package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func submissionRoutes(app *fiber.App, sc *controllers.SubmissionController, protect fiber.Handler) {
	subs := app.Group("/submissions")

	subs.Post("/:formId", sc.SubmitForm)
	subs.Get("/:id", sc.GetSubmission)
	subs.Get("/form/:formId", protect, sc.GetSubmissionsByForm)
}
