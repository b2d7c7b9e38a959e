package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "Backend-FormDesk/docs"
	"Backend-FormDesk/src/config"
	"Backend-FormDesk/src/controllers"
	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/jobs"
	"Backend-FormDesk/src/routes"
	"Backend-FormDesk/src/seeder"
	"Backend-FormDesk/src/services/admins"
	"Backend-FormDesk/src/services/forms"
	"Backend-FormDesk/src/services/payments"
	"Backend-FormDesk/src/services/submission"
	"Backend-FormDesk/src/services/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title          FormDesk API
// @version        1.0
// @description    Dynamic registration forms with payment-gated submissions.
// @BasePath       /
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Server.LogLevel)
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// MongoDB
	mongoDB, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer mongoDB.Disconnect(context.Background()) //nolint:errcheck

	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Error creating indexes: %v", err)
	}

	// Redis + Asynq (optional; form lifecycle jobs are disabled without it)
	redisClient, err := database.NewRedis(ctx, cfg.Redis.URI)
	if err != nil {
		logger.Warn("⚠️ Redis unreachable, form lifecycle jobs disabled", zap.Error(err))
		cfg.Redis.URI = ""
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}
	asynqClient := database.NewAsynqClient(cfg.Redis.URI)
	if asynqClient != nil {
		defer asynqClient.Close() //nolint:errcheck
	}
	scheduler := jobs.NewScheduler(asynqClient, cfg.Redis.URI, logger)

	// Services
	formSvc := forms.NewService(mongoDB.DB, logger, cfg.Mongo.Timeout)
	subSvc := submission.NewService(mongoDB, formSvc, logger, cfg.Mongo.Timeout)
	uploadSvc, err := uploads.NewService(mongoDB)
	if err != nil {
		log.Fatalf("Error creating upload bucket: %v", err)
	}
	adminSvc := admins.NewService(mongoDB, logger, cfg.Mongo.Timeout)
	gateway := payments.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paySvc := payments.NewService(mongoDB, gateway, cfg.Razorpay.WebhookSecret, logger, cfg.Mongo.Timeout)

	// Background worker for scheduled form closes
	worker := jobs.StartWorker(cfg.Redis.URI, mongoDB.DB.Collection(database.FormsCollection), logger)
	if worker != nil {
		defer worker.Shutdown()
	}

	// Bootstrap data
	if err := seeder.SeedDefaultAdmin(ctx, mongoDB.DB, cfg.Auth); err != nil {
		logger.Error("failed to seed default admin", zap.Error(err))
	}
	if cfg.Server.SeedSampleData {
		if err := seeder.SeedSampleForm(ctx, formSvc); err != nil {
			logger.Error("failed to seed sample form", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Uploads.MaxFileSize) * (cfg.Uploads.MaxFiles + 1),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, routes.Controllers{
		Auth:       controllers.NewAuthController(adminSvc, []byte(cfg.Auth.JWTSecret), logger),
		Form:       controllers.NewFormController(formSvc, subSvc, scheduler, logger),
		Submission: controllers.NewSubmissionController(subSvc, uploadSvc, cfg.Uploads, logger),
		Payment:    controllers.NewPaymentController(paySvc, logger),
		Export:     controllers.NewExportController(formSvc, subSvc, logger),
		File:       controllers.NewFileController(uploadSvc, logger),
	}, []byte(cfg.Auth.JWTSecret))

	log.Println("Server is running on port " + cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	return logger
}
