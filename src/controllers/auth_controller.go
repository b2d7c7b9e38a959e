package controllers

import (
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/admins"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	admins    *admins.Service
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthController(adminSvc *admins.Service, jwtSecret []byte, logger *zap.Logger) *AuthController {
	return &AuthController{admins: adminSvc, jwtSecret: jwtSecret, logger: logger}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}

	admin, err := ac.admins.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	token, err := utils.GenerateJWT(ac.jwtSecret, admin.ID.Hex(), admin.Email)
	if err != nil {
		return utils.RespondError(c, ac.logger, err)
	}

	return c.JSON(models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
