package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"

	"Backend-FormDesk/src/config"
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/submission"
	"Backend-FormDesk/src/services/uploads"
	"Backend-FormDesk/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SubmissionController struct {
	submissions *submission.Service
	uploads     *uploads.Service
	limits      config.UploadConfig
	logger      *zap.Logger
}

func NewSubmissionController(subSvc *submission.Service, uploadSvc *uploads.Service, limits config.UploadConfig, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{submissions: subSvc, uploads: uploadSvc, limits: limits, logger: logger}
}

type submitIn struct {
	Responses map[string]string `json:"responses"`
}

// SubmitForm godoc
// @Summary      Submit responses (and files) against a form template
// @Description  Accepts multipart with a "responses" JSON part plus file parts named after file fields, or a plain JSON body.
// @Tags         submissions
// @Accept       mpfd
// @Produce      json
// @Param        formId path string true "Form ID"
// @Success      201  {object}  models.SubmitResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /submissions/{formId} [post]
func (sc *SubmissionController) SubmitForm(c *fiber.Ctx) error {
	formID := c.Params("formId")

	responses, files, err := sc.parseRequest(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	// Store the binaries first: the writer only ever sees durable ids.
	stored, uploadedFiles, err := sc.storeFiles(files)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	sub, err := sc.submissions.Submit(c.Context(), formID, responses, uploadedFiles)
	if err != nil {
		// The submission was rejected, so the blobs are orphans.
		sc.rollbackFiles(stored)
		return utils.RespondError(c, sc.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Form submitted successfully",
		"submissionId":    sub.ID,
		"paymentRequired": sub.PaymentStatus != nil,
		"data":            sub.Responses,
	})
}

// GetSubmission godoc
// @Summary      Get one submission
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /submissions/{id} [get]
func (sc *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	sub, err := sc.submissions.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.RespondError(c, sc.logger, err)
	}
	return c.JSON(sub)
}

// GetSubmissionsByForm godoc
// @Summary      List a form's submissions
// @Tags         submissions
// @Produce      json
// @Param        formId path string true "Form ID"
// @Success      200  {array}  models.Submission
// @Security     BearerAuth
// @Router       /submissions/form/{formId} [get]
func (sc *SubmissionController) GetSubmissionsByForm(c *fiber.Ctx) error {
	subs, err := sc.submissions.ListByForm(c.Context(), c.Params("formId"))
	if err != nil {
		return utils.RespondError(c, sc.logger, err)
	}
	return c.JSON(subs)
}

type multipartFile struct {
	fieldName string
	header    *multipart.FileHeader
}

// parseRequest accepts either a multipart form (responses JSON part plus
// file parts) or a plain JSON body for file-less templates.
func (sc *SubmissionController) parseRequest(c *fiber.Ctx) (map[string]string, []*multipartFile, error) {
	mp, err := c.MultipartForm()
	if err == nil && mp != nil {
		responses := map[string]string{}
		if raw, ok := mp.Value["responses"]; ok && len(raw) > 0 {
			if err := json.Unmarshal([]byte(raw[0]), &responses); err != nil {
				return nil, nil, fmt.Errorf("responses must be a JSON object of field values")
			}
		} else {
			// Fall back to the flat form fields.
			for key, vals := range mp.Value {
				if len(vals) > 0 {
					responses[key] = vals[0]
				}
			}
		}

		var files []*multipartFile
		count := 0
		for fieldName, headers := range mp.File {
			for _, header := range headers {
				count++
				if count > sc.limits.MaxFiles {
					return nil, nil, fmt.Errorf("too many files: at most %d allowed", sc.limits.MaxFiles)
				}
				if header.Size > sc.limits.MaxFileSize {
					return nil, nil, fmt.Errorf("file %q exceeds the %d byte limit", header.Filename, sc.limits.MaxFileSize)
				}
				files = append(files, &multipartFile{fieldName: fieldName, header: header})
			}
		}
		return responses, files, nil
	}

	var in submitIn
	if err := c.BodyParser(&in); err != nil {
		return nil, nil, fmt.Errorf("invalid input: %v", err)
	}
	if in.Responses == nil {
		in.Responses = map[string]string{}
	}
	return in.Responses, nil, nil
}

func (sc *SubmissionController) storeFiles(files []*multipartFile) ([]primitive.ObjectID, []models.UploadedFile, error) {
	var stored []primitive.ObjectID
	var records []models.UploadedFile

	for _, file := range files {
		f, err := file.header.Open()
		if err != nil {
			sc.rollbackFiles(stored)
			return nil, nil, fmt.Errorf("could not read file %q", file.header.Filename)
		}

		id, err := sc.uploads.Store(file.fieldName, file.header.Filename, f)
		f.Close()
		if err != nil {
			sc.rollbackFiles(stored)
			return nil, nil, fmt.Errorf("could not store file %q", file.header.Filename)
		}

		stored = append(stored, id)
		records = append(records, models.UploadedFile{
			FieldName:    file.fieldName,
			OriginalName: file.header.Filename,
			FileID:       id,
		})
	}
	return stored, records, nil
}

func (sc *SubmissionController) rollbackFiles(ids []primitive.ObjectID) {
	for _, id := range ids {
		if err := sc.uploads.Delete(id); err != nil {
			sc.logger.Warn("orphan upload cleanup failed",
				zap.String("fileId", id.Hex()),
				zap.Error(err))
		}
	}
}
