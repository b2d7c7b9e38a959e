package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// formRoutes mounts form template management. Reading a template is public
// so the registration page can render it; authoring is admin-only.
func formRoutes(app *fiber.App, fc *controllers.FormController, protect fiber.Handler) {
	forms := app.Group("/forms")

	forms.Post("/", protect, fc.CreateForm)
	forms.Get("/", fc.GetAllForms)
	forms.Get("/:id", fc.GetFormByID)
	forms.Patch("/:id/extend", protect, fc.ExtendForm)
	forms.Post("/check-unique", fc.CheckUnique)
}
