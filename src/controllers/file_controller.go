package controllers

import (
	"Backend-FormDesk/src/services/uploads"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type FileController struct {
	uploads *uploads.Service
	logger  *zap.Logger
}

func NewFileController(uploadSvc *uploads.Service, logger *zap.Logger) *FileController {
	return &FileController{uploads: uploadSvc, logger: logger}
}

// GetFile godoc
// @Summary      Stream an uploaded file by id
// @Tags         files
// @Produce      application/octet-stream
// @Param        id path string true "File ID"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Router       /files/{id} [get]
func (fc *FileController) GetFile(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "File not found")
	}

	if _, err := fc.uploads.Copy(id, c.Response().BodyWriter()); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "File not found")
	}
	return nil
}
