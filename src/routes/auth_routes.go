package routes

import (
	"Backend-FormDesk/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App, ac *controllers.AuthController) {
	auth := app.Group("/auth")

	auth.Post("/login", ac.Login)
}
