// Package submission implements the intake pipeline: template resolution,
// rule validation, uniqueness checks and the atomic write of a submission
// together with its unique-value claims and frozen template snapshot.
package submission

import (
	"context"
	"time"

	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/fields"
	"Backend-FormDesk/src/services/forms"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Service struct {
	client      *mongo.Client
	submissions *mongo.Collection
	claims      *mongo.Collection
	forms       *forms.Service
	logger      *zap.Logger
	timeout     time.Duration
}

func NewService(m *database.Mongo, formSvc *forms.Service, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		client:      m.Client,
		submissions: m.DB.Collection(database.SubmissionsCollection),
		claims:      m.DB.Collection(database.UniqueClaimsCollection),
		forms:       formSvc,
		logger:      logger,
		timeout:     timeout,
	}
}

// Project keeps only the response keys declared by the template. Unknown
// keys are dropped silently: nothing attacker-supplied is ever persisted.
func Project(form *models.Form, raw map[string]string) map[string]string {
	projected := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		if value, ok := raw[field.Name]; ok {
			projected[field.Name] = value
		}
	}
	return projected
}

// Snapshot freezes the template shape at submission time so historical
// submissions stay readable after the template is edited.
func Snapshot(form *models.Form) models.FormSnapshot {
	snap := models.FormSnapshot{
		FormName: form.FormName,
		Fields:   make([]models.SnapshotField, 0, len(form.Fields)),
	}
	for _, field := range form.Fields {
		snap.Fields = append(snap.Fields, models.SnapshotField{
			Name:  field.Name,
			Type:  field.Type,
			Label: field.Label,
		})
	}
	return snap
}

// CheckUnique reports whether a value is already claimed for a unique field
// of the form. This is only the friendly pre-check; the unique index on the
// claims collection is what actually prevents the race.
func (s *Service) CheckUnique(ctx context.Context, formID, field, value string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return false, apperrors.NotFound("form")
	}
	if value == "" {
		return false, nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.claims.CountDocuments(cctx, bson.M{
		"formId": oid,
		"field":  field,
		"value":  value,
	})
	if err != nil {
		return false, apperrors.Unavailable(err)
	}
	return count > 0, nil
}

// Submit runs the full intake pipeline. File binaries must already be
// durably stored; files carries their GridFS ids only. Either the
// submission document and all of its claims become visible, or nothing
// does — every failure path leaves zero partial state.
func (s *Service) Submit(ctx context.Context, formID string, raw map[string]string, files []models.UploadedFile) (*models.Submission, error) {
	form, err := s.forms.Resolve(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses := Project(form, raw)

	uploaded := make(map[string]bool, len(files))
	fileErrs := make(map[string]string)
	for _, f := range files {
		def, ok := form.FieldByName(f.FieldName)
		if !ok || def.Type != models.FieldFile {
			fileErrs[f.FieldName] = "does not accept file uploads"
			continue
		}
		uploaded[f.FieldName] = true
	}

	errs := fields.ValidateAll(form.Fields, responses, uploaded)
	for k, v := range fileErrs {
		errs[k] = v
	}
	if len(errs) > 0 {
		return nil, apperrors.ValidationFailed(errs)
	}

	// Friendly pre-check. A concurrent writer can still slip past it; the
	// claims index catches that inside the transaction below.
	for _, field := range form.Fields {
		if !field.Unique {
			continue
		}
		value := responses[field.Name]
		if value == "" {
			continue
		}
		exists, err := s.CheckUnique(ctx, formID, field.Name, value)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.DuplicateValue(field.Name)
		}
	}

	now := time.Now()
	sub := &models.Submission{
		ID:            primitive.NewObjectID(),
		FormID:        form.ID,
		Responses:     responses,
		UploadedFiles: files,
		FormSnapshot:  Snapshot(form),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if form.PaymentRequired {
		pending := models.PaymentPending
		sub.PaymentStatus = &pending
	}

	if err := s.commit(ctx, form, sub); err != nil {
		return nil, err
	}

	s.logger.Info("submission persisted",
		zap.String("submissionId", sub.ID.Hex()),
		zap.String("formId", form.ID.Hex()),
		zap.Int("responses", len(sub.Responses)),
		zap.Int("files", len(sub.UploadedFiles)),
		zap.Bool("paymentRequired", form.PaymentRequired))

	return sub, nil
}

// commit writes the claims and the submission in one transaction. Claims
// are inserted one by one so a duplicate-key abort can name the offending
// field.
func (s *Service) commit(ctx context.Context, form *models.Form, sub *models.Submission) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return apperrors.Unavailable(err)
	}
	defer session.EndSession(cctx)

	_, err = session.WithTransaction(cctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for _, field := range form.Fields {
			if !field.Unique {
				continue
			}
			value := sub.Responses[field.Name]
			if value == "" {
				continue
			}
			claim := models.UniqueClaim{
				FormID:       form.ID,
				Field:        field.Name,
				Value:        value,
				SubmissionID: sub.ID,
			}
			if _, err := s.claims.InsertOne(sessCtx, claim); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					return nil, apperrors.DuplicateValue(field.Name)
				}
				return nil, apperrors.Unavailable(err)
			}
		}

		if _, err := s.submissions.InsertOne(sessCtx, sub); err != nil {
			return nil, apperrors.Unavailable(err)
		}
		return nil, nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.Unavailable(err)
	}
	return nil
}

// GetByID retrieves a submission by its hex id.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("submission")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var sub models.Submission
	if err := s.submissions.FindOne(cctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("submission")
		}
		return nil, apperrors.Unavailable(err)
	}
	return &sub, nil
}

// ListByForm returns a form's submissions, newest first.
func (s *Service) ListByForm(ctx context.Context, formID string) ([]models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return nil, apperrors.NotFound("form")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.submissions.Find(cctx, bson.M{"formId": oid}, opts)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer cursor.Close(cctx)

	var subs []models.Submission
	if err := cursor.All(cctx, &subs); err != nil {
		return nil, apperrors.Unavailable(err)
	}
	return subs, nil
}

// ListAll returns every submission, for the admin export.
func (s *Service) ListAll(ctx context.Context) ([]models.Submission, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.submissions.Find(cctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer cursor.Close(cctx)

	var subs []models.Submission
	if err := cursor.All(cctx, &subs); err != nil {
		return nil, apperrors.Unavailable(err)
	}
	return subs, nil
}

// Result shapes the submission for the intake response.
func Result(sub *models.Submission, paymentRequired bool) *models.SubmitResult {
	return &models.SubmitResult{
		SubmissionID:    sub.ID,
		PaymentRequired: paymentRequired,
		Responses:       sub.Responses,
	}
}
