package seeder

import (
	"context"
	"log"
	"strings"
	"time"

	"Backend-FormDesk/src/config"
	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/models"
	"Backend-FormDesk/src/services/forms"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAdmin creates the bootstrap admin account from env config.
// It is a no-op when the account already exists or no credentials are set.
func SeedDefaultAdmin(ctx context.Context, db *mongo.Database, cfg config.AuthConfig) error {
	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		log.Println("⚠️ No default admin credentials configured, skipping admin seed")
		return nil
	}

	admins := db.Collection(database.AdminsCollection)
	email := strings.ToLower(strings.TrimSpace(cfg.DefaultAdminEmail))

	count, err := admins.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = admins.InsertOne(ctx, models.Admin{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	log.Println("✅ Seeded default admin:", email)
	return nil
}

// SeedSampleForm creates a demo registration template for local testing.
func SeedSampleForm(ctx context.Context, formSvc *forms.Service) error {
	amount := 500.0
	req := &models.CreateFormRequest{
		FormName:        "Tech Conference Registration",
		Status:          models.FormActive,
		StartDate:       time.Now(),
		EndDate:         time.Now().AddDate(0, 1, 0),
		PaymentRequired: true,
		PaymentAmount:   &amount,
		Fields: []models.CreateFieldRequest{
			{Label: "Full Name", Type: models.FieldText, Required: true},
			{Label: "Email Address", Type: models.FieldEmail, Required: true},
			{Label: "Contact Number", Type: models.FieldTel, Required: true},
			{Label: "Aadhaar Number", Type: models.FieldText, Required: true},
			{Label: "Date of Birth", Type: models.FieldDate, Required: true},
			{
				Label:    "Primary Role",
				Type:     models.FieldSelect,
				Required: true,
				Options:  []string{"Developer", "Designer", "Manager", "Student", "Other"},
			},
			{Label: "ID Proof", Type: models.FieldFile, Required: false},
		},
	}

	form, err := formSvc.Create(ctx, req)
	if err != nil {
		log.Printf("Error creating sample form '%s': %v", req.FormName, err)
		return err
	}
	log.Printf("✅ Created sample form: %s (ID: %s)", form.FormName, form.ID.Hex())
	return nil
}
