package controllers

import (
	"Backend-FormDesk/src/jobs"
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/forms"
	"Backend-FormDesk/src/services/submission"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FormController struct {
	forms       *forms.Service
	submissions *submission.Service
	scheduler   *jobs.Scheduler
	logger      *zap.Logger
}

func NewFormController(formSvc *forms.Service, subSvc *submission.Service, scheduler *jobs.Scheduler, logger *zap.Logger) *FormController {
	return &FormController{forms: formSvc, submissions: subSvc, scheduler: scheduler, logger: logger}
}

// CreateForm godoc
// @Summary      Create a new form template
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body models.CreateFormRequest true "Form template"
// @Success      201  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /forms [post]
func (fc *FormController) CreateForm(c *fiber.Ctx) error {
	var req models.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	form, err := fc.forms.Create(c.Context(), &req)
	if err != nil {
		return utils.RespondError(c, fc.logger, err)
	}

	// Auto-close the form when its end date passes.
	fc.scheduler.ScheduleClose(form.ID.Hex(), form.EndDate)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Form saved successfully",
		"formId":  form.ID,
		"form":    form,
	})
}

// GetAllForms godoc
// @Summary      List form templates with pagination and search
// @Tags         forms
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(10)
// @Param        search query  string  false  "Search by form name"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /forms [get]
func (fc *FormController) GetAllForms(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	result, err := fc.forms.List(c.Context(), params)
	if err != nil {
		return utils.RespondError(c, fc.logger, err)
	}
	return c.JSON(result)
}

// GetFormByID godoc
// @Summary      Get one form template
// @Tags         forms
// @Produce      json
// @Param        id path string true "Form ID"
// @Success      200  {object}  models.Form
// @Failure      404  {object}  models.ErrorResponse
// @Router       /forms/{id} [get]
func (fc *FormController) GetFormByID(c *fiber.Ctx) error {
	form, err := fc.forms.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.RespondError(c, fc.logger, err)
	}
	return c.JSON(form)
}

// ExtendForm godoc
// @Summary      Extend a form's end date
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "Form ID"
// @Param        body body models.ExtendFormRequest true "New end date"
// @Success      200  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /forms/{id}/extend [patch]
func (fc *FormController) ExtendForm(c *fiber.Ctx) error {
	var req models.ExtendFormRequest
	if err := c.BodyParser(&req); err != nil || req.NewEndDate.IsZero() {
		return utils.HandleError(c, fiber.StatusBadRequest, "New end date is required")
	}

	form, err := fc.forms.ExtendEndDate(c.Context(), c.Params("id"), req.NewEndDate)
	if err != nil {
		return utils.RespondError(c, fc.logger, err)
	}

	fc.scheduler.ScheduleClose(form.ID.Hex(), form.EndDate)

	return c.JSON(fiber.Map{
		"message": "Form end date extended successfully",
		"form":    form,
	})
}

type checkUniqueIn struct {
	FormID string `json:"formId"`
	Field  string `json:"field"`
	Value  string `json:"value"`
}

// CheckUnique godoc
// @Summary      Pre-check whether a unique field value is already taken
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body checkUniqueIn true "Form, field and value"
// @Success      200  {object}  map[string]bool
// @Router       /forms/check-unique [post]
func (fc *FormController) CheckUnique(c *fiber.Ctx) error {
	var in checkUniqueIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if in.Value == "" {
		return c.JSON(fiber.Map{"exists": false})
	}

	exists, err := fc.submissions.CheckUnique(c.Context(), in.FormID, in.Field, in.Value)
	if err != nil {
		return utils.RespondError(c, fc.logger, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}
