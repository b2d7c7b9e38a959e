package jobs

import (
	"context"
	"encoding/json"
	"time"

	"Backend-FormDesk/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCloseFormTask deactivates a form once its end date has passed. A
// form that was extended after scheduling is left alone; the rescheduled
// task will close it at the new end date.
func HandleCloseFormTask(forms *mongo.Collection, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload CloseFormPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("close-form payload decode error", zap.Error(err))
			return err
		}

		id, err := primitive.ObjectIDFromHex(payload.FormID)
		if err != nil {
			logger.Error("close-form bad form id", zap.String("formId", payload.FormID))
			return err
		}

		var form models.Form
		if err := forms.FindOne(ctx, bson.M{"_id": id}).Decode(&form); err != nil {
			if err == mongo.ErrNoDocuments {
				logger.Warn("form not found, possibly deleted, skipping close", zap.String("formId", payload.FormID))
				return nil
			}
			return err
		}

		if time.Now().Before(form.EndDate) {
			logger.Info("form end date extended, skipping close", zap.String("formId", payload.FormID))
			return nil
		}

		_, err = forms.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": models.FormInactive, "updatedAt": time.Now()}},
		)
		if err != nil {
			logger.Error("failed to close form", zap.String("formId", payload.FormID), zap.Error(err))
			return err
		}

		logger.Info("✅ form closed", zap.String("formId", payload.FormID))
		return nil
	}
}

// StartWorker runs the asynq worker in the background. It returns the
// server so the caller can shut it down gracefully, or nil when Redis is
// not configured.
func StartWorker(redisURI string, forms *mongo.Collection, logger *zap.Logger) *asynq.Server {
	if redisURI == "" {
		logger.Warn("⚠️ Redis not available, background worker disabled")
		return nil
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCloseForm, HandleCloseFormTask(forms, logger))

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("asynq worker stopped", zap.Error(err))
		}
	}()

	logger.Info("✅ Background worker started")
	return srv
}
