package payments

import (
	"context"
	"testing"
	"time"

	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/database"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

const notifySecret = "whsec_test"

func capturedPayload(orderID, paymentID string) []byte {
	return []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"` +
		paymentID + `","order_id":"` + orderID + `"}}}}`)
}

func submissionDoc(orderID, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "formId", Value: primitive.NewObjectID()},
		{Key: "paymentStatus", Value: status},
		{Key: "paymentDetails", Value: bson.D{
			{Key: "orderId", Value: orderID},
			{Key: "amount", Value: int64(50000)},
			{Key: "currency", Value: "INR"},
		}},
	}
}

func TestHandleNotification(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("TransitionFromPendingApplies", func(mt *mtest.T) {
		svc := NewService(&database.Mongo{Client: mt.Client, DB: mt.DB}, nil, notifySecret, zap.NewNop(), 2*time.Second)
		raw := capturedPayload("order_100", "pay_100")

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "formdesk.submissions", mtest.FirstBatch,
				submissionDoc("order_100", "Pending")),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		assert.NoError(mt, svc.HandleNotification(context.Background(), raw, sign(raw, notifySecret)))
	})

	mt.Run("RedeliveryAfterCompletionIsNoOp", func(mt *mtest.T) {
		svc := NewService(&database.Mongo{Client: mt.Client, DB: mt.DB}, nil, notifySecret, zap.NewNop(), 2*time.Second)
		raw := capturedPayload("order_100", "pay_100")

		// The record is already Completed, so the guarded update matches
		// nothing and the delivery is acknowledged without error.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "formdesk.submissions", mtest.FirstBatch,
				submissionDoc("order_100", "Completed")),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		assert.NoError(mt, svc.HandleNotification(context.Background(), raw, sign(raw, notifySecret)))
	})

	mt.Run("UnknownOrderIsNotFound", func(mt *mtest.T) {
		svc := NewService(&database.Mongo{Client: mt.Client, DB: mt.DB}, nil, notifySecret, zap.NewNop(), 2*time.Second)
		raw := capturedPayload("order_missing", "pay_1")

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "formdesk.submissions", mtest.FirstBatch),
		)

		err := svc.HandleNotification(context.Background(), raw, sign(raw, notifySecret))
		assert.True(mt, apperrors.Is(err, apperrors.CodeNotFound))
	})
}

func TestHandleNotificationRejectsBeforeLookup(t *testing.T) {
	svc := &Service{webhookSecret: []byte(notifySecret), logger: zap.NewNop(), timeout: time.Second}

	t.Run("WrongSignature", func(t *testing.T) {
		raw := capturedPayload("order_1", "pay_1")
		err := svc.HandleNotification(context.Background(), raw, sign(raw, "other-secret"))
		assert.True(t, apperrors.Is(err, apperrors.CodeInvalidSignature))
	})

	t.Run("SignedButMalformedPayload", func(t *testing.T) {
		raw := []byte(`{"event":"payment.captured","payload":`)
		err := svc.HandleNotification(context.Background(), raw, sign(raw, notifySecret))
		assert.True(t, apperrors.Is(err, apperrors.CodeMalformedPayload))
		assert.False(t, apperrors.Is(err, apperrors.CodeInvalidSignature))
	})
}
