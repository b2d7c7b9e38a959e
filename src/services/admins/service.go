// Package admins authenticates back-office accounts. Admin routes (form
// authoring, exports) are guarded by JWTs issued here.
package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	admins  *mongo.Collection
	logger  *zap.Logger
	timeout time.Duration
}

func NewService(m *database.Mongo, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		admins:  m.DB.Collection(database.AdminsCollection),
		logger:  logger,
		timeout: timeout,
	}
}

// Authenticate verifies an admin's credentials against the stored bcrypt
// hash. Lookup failure and password mismatch are indistinguishable to the
// caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var admin models.Admin
	err := s.admins.FindOne(cctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}
