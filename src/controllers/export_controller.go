package controllers

import (
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/exports"
	"Backend-FormDesk/src/services/forms"
	"Backend-FormDesk/src/services/submission"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	forms       *forms.Service
	submissions *submission.Service
	logger      *zap.Logger
}

func NewExportController(formSvc *forms.Service, subSvc *submission.Service, logger *zap.Logger) *ExportController {
	return &ExportController{forms: formSvc, submissions: subSvc, logger: logger}
}

// FormsExcel godoc
// @Summary      Download all form templates as a spreadsheet
// @Tags         exports
// @Produce      application/octet-stream
// @Success      200
// @Security     BearerAuth
// @Router       /exports/forms/excel [get]
func (ec *ExportController) FormsExcel(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	params.Limit = 10000 // the export is unpaged
	result, err := ec.forms.List(c.Context(), params)
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	allForms, _ := result.Data.([]models.Form)
	workbook, err := exports.BuildFormsWorkbook(allForms)
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=all-forms.xlsx`)
	return workbook.Write(c.Response().BodyWriter())
}

// SubmissionsExcel godoc
// @Summary      Download one form's submissions as a spreadsheet
// @Tags         exports
// @Produce      application/octet-stream
// @Param        formId path string true "Form ID"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /exports/submissions/{formId}/excel [get]
func (ec *ExportController) SubmissionsExcel(c *fiber.Ctx) error {
	form, err := ec.forms.GetByID(c.Context(), c.Params("formId"))
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	subs, err := ec.submissions.ListByForm(c.Context(), c.Params("formId"))
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	workbook, err := exports.BuildSubmissionsWorkbook(form.FormName, subs)
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=submissions.xlsx`)
	return workbook.Write(c.Response().BodyWriter())
}

// Receipt godoc
// @Summary      Download the PDF receipt for a submission
// @Tags         exports
// @Produce      application/pdf
// @Param        submissionId path string true "Submission ID"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Router       /exports/receipt/{submissionId} [get]
func (ec *ExportController) Receipt(c *fiber.Ctx) error {
	sub, err := ec.submissions.GetByID(c.Context(), c.Params("submissionId"))
	if err != nil {
		return utils.RespondError(c, ec.logger, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename=receipt.pdf`)
	return exports.BuildReceipt(sub, c.Response().BodyWriter())
}
