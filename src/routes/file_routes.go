package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func fileRoutes(app *fiber.App, fc *controllers.FileController) {
	files := app.Group("/files")

	files.Get("/:id", fc.GetFile)
}
