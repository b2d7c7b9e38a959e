package forms

import (
	"context"
	"regexp"
	"strings"
	"time"

	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Service owns form templates: authoring, lookup and the resolution step
// of the submission pipeline.
type Service struct {
	forms    *mongo.Collection
	logger   *zap.Logger
	validate *validator.Validate
	timeout  time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewService(db *mongo.Database, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		forms:    db.Collection(database.FormsCollection),
		logger:   logger,
		validate: validator.New(),
		timeout:  timeout,
		now:      time.Now,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9_]+`)

// Slugify turns a display label into the canonical machine key stored as
// the field name. All response maps, uniqueness claims and snapshots key on
// this value, so it is computed exactly once, at authoring time.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, " ", "_")
	return slugStrip.ReplaceAllString(s, "")
}

// InferSemanticKind is the authoring-time fallback when the author did not
// tag a field. The explicit semanticKind always wins; this only exists so
// legacy payloads keep their identity/phone/email rules.
func InferSemanticKind(name string, fieldType models.FieldType) models.SemanticKind {
	switch fieldType {
	case models.FieldEmail:
		return models.KindEmail
	case models.FieldTel:
		return models.KindPhone
	case models.FieldPassword:
		return models.KindPassword
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "aadhaar") || strings.Contains(lower, "aadhar") || strings.Contains(lower, "adhar"):
		return models.KindNationalID
	case strings.Contains(lower, "password") && !strings.Contains(lower, "hint"):
		return models.KindPassword
	case strings.Contains(lower, "contact") || strings.Contains(lower, "phone") || strings.Contains(lower, "mobile"):
		return models.KindPhone
	case lower == "email" || strings.Contains(lower, "e_mail"):
		return models.KindEmail
	}
	return models.KindGeneric
}

// Placeholder builds the hint text shown in the renderer for a field.
func Placeholder(field models.FieldDefinition) string {
	switch field.Type {
	case models.FieldText:
		return "Enter " + strings.ToLower(field.Label)
	case models.FieldEmail:
		return "example@email.com"
	case models.FieldNumber:
		return "Enter a number"
	case models.FieldDate:
		return "YYYY-MM-DD"
	case models.FieldSelect, models.FieldRadio:
		return "Select an option"
	case models.FieldFile:
		return "Choose file"
	default:
		return ""
	}
}

// NormalizeField resolves one authored field into its stored definition:
// canonical slug name, explicit semantic kind, unique flag and placeholder.
func NormalizeField(req models.CreateFieldRequest) (models.FieldDefinition, error) {
	name := req.Name
	if name == "" {
		name = Slugify(req.Label)
	}

	kind := req.SemanticKind
	if kind == "" || kind == models.KindGeneric {
		kind = InferSemanticKind(name, req.Type)
	}

	// Identity-number and email fields default to unique within the form;
	// the author may override either way.
	unique := kind == models.KindNationalID || kind == models.KindEmail
	if req.Unique != nil {
		unique = *req.Unique
	}

	if req.Pattern != "" {
		if _, err := regexp.Compile(req.Pattern); err != nil {
			return models.FieldDefinition{}, err
		}
	}

	field := models.FieldDefinition{
		Name:         name,
		Label:        req.Label,
		Type:         req.Type,
		Required:     req.Required,
		SemanticKind: kind,
		Unique:       unique,
		MinLength:    req.MinLength,
		MaxLength:    req.MaxLength,
		Min:          req.Min,
		Max:          req.Max,
		Pattern:      req.Pattern,
		DateMin:      req.DateMin,
		DateMax:      req.DateMax,
		Options:      req.Options,
	}
	field.Placeholder = Placeholder(field)
	return field, nil
}

// Create persists a new form template.
func (s *Service) Create(ctx context.Context, req *models.CreateFormRequest) (*models.Form, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ValidationFailed(structErrors(err))
	}
	if req.PaymentRequired && (req.PaymentAmount == nil || *req.PaymentAmount <= 0) {
		return nil, apperrors.ValidationFailed(map[string]string{
			"paymentAmount": "payment amount is required when payment is enabled",
		})
	}

	seen := make(map[string]bool, len(req.Fields))
	fieldDefs := make([]models.FieldDefinition, 0, len(req.Fields))
	for _, fr := range req.Fields {
		field, err := NormalizeField(fr)
		if err != nil {
			return nil, apperrors.ValidationFailed(map[string]string{fr.Label: "invalid pattern"})
		}
		if seen[field.Name] {
			return nil, apperrors.ValidationFailed(map[string]string{field.Name: "duplicate field name"})
		}
		seen[field.Name] = true
		fieldDefs = append(fieldDefs, field)
	}

	now := s.now()
	form := &models.Form{
		FormName:        req.FormName,
		Status:          req.Status,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PaymentRequired: req.PaymentRequired,
		Fields:          fieldDefs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.PaymentRequired {
		form.PaymentAmount = req.PaymentAmount
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.forms.InsertOne(cctx, form)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	form.ID = res.InsertedID.(primitive.ObjectID)

	s.logger.Info("form created",
		zap.String("formId", form.ID.Hex()),
		zap.String("formName", form.FormName),
		zap.Int("fields", len(form.Fields)))

	return form, nil
}

// GetByID returns a template by its hex id.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Form, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("form")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var form models.Form
	if err := s.forms.FindOne(cctx, bson.M{"_id": oid}).Decode(&form); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("form")
		}
		return nil, apperrors.Unavailable(err)
	}
	return &form, nil
}

// Resolve loads a template for one submission attempt. The returned form is
// treated as an immutable snapshot by the rest of the pipeline. A template
// outside its [startDate, endDate] window or not Active is closed — this is
// enforced here even though some legacy paths skipped it.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if form.Status != models.FormActive || now.Before(form.StartDate) || now.After(form.EndDate) {
		return nil, apperrors.TemplateClosed(form.FormName)
	}
	return form, nil
}

// List returns forms with pagination, newest first.
func (s *Service) List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{}
	if params.Search != "" {
		filter["formName"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := s.forms.CountDocuments(cctx, filter)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}

	sort := bson.D{}
	for k, v := range params.GetSortOrder() {
		sort = append(sort, bson.E{Key: k, Value: v})
	}
	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(sort)

	cursor, err := s.forms.Find(cctx, filter, opts)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer cursor.Close(cctx)

	var forms []models.Form
	if err := cursor.All(cctx, &forms); err != nil {
		return nil, apperrors.Unavailable(err)
	}

	return models.NewPaginatedResponse(forms, total, params), nil
}

// ExtendEndDate moves a form's end date forward. Template mutations are
// append/extend only — fields in use are never removed or retyped.
func (s *Service) ExtendEndDate(ctx context.Context, id string, newEndDate time.Time) (*models.Form, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("form")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	after := options.After
	var form models.Form
	err = s.forms.FindOneAndUpdate(cctx,
		bson.M{"_id": oid, "endDate": bson.M{"$lt": newEndDate}},
		bson.M{"$set": bson.M{"endDate": newEndDate, "updatedAt": s.now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Missing form and a non-forward date both land here; a second
			// lookup tells them apart.
			if _, gerr := s.GetByID(ctx, id); gerr != nil {
				return nil, gerr
			}
			return nil, apperrors.ValidationFailed(map[string]string{
				"newEndDate": "must be after the current end date",
			})
		}
		return nil, apperrors.Unavailable(err)
	}

	s.logger.Info("form end date extended",
		zap.String("formId", form.ID.Hex()),
		zap.Time("newEndDate", newEndDate))

	return &form, nil
}

func structErrors(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[fe.Field()] = "failed on rule: " + fe.Tag()
		}
		return out
	}
	out["request"] = err.Error()
	return out
}
