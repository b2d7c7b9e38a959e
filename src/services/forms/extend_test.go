package forms

import (
	"context"
	"testing"
	"time"

	"Backend-FormDesk/src/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func formDoc(oid primitive.ObjectID, endDate time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "formName", Value: "Tech Conference Registration"},
		{Key: "status", Value: "Active"},
		{Key: "endDate", Value: primitive.NewDateTimeFromTime(endDate)},
		{Key: "fields", Value: bson.A{}},
	}
}

func TestExtendEndDate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	current := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("ForwardDateApplies", func(mt *mtest.T) {
		svc := NewService(mt.DB, zap.NewNop(), 2*time.Second)
		oid := primitive.NewObjectID()
		later := current.AddDate(0, 0, 7)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: formDoc(oid, later)}),
		)

		form, err := svc.ExtendEndDate(context.Background(), oid.Hex(), later)
		require.NoError(mt, err)
		assert.True(mt, form.EndDate.Equal(later))
	})

	mt.Run("EarlierDateIsRejected", func(mt *mtest.T) {
		svc := NewService(mt.DB, zap.NewNop(), 2*time.Second)
		oid := primitive.NewObjectID()

		// The guarded update matches nothing; the follow-up lookup finds
		// the form, so the date itself is the problem.
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "formdesk.forms", mtest.FirstBatch, formDoc(oid, current)),
		)

		_, err := svc.ExtendEndDate(context.Background(), oid.Hex(), current.AddDate(0, 0, -1))
		require.Error(mt, err)

		appErr, ok := apperrors.As(err)
		require.True(mt, ok)
		assert.Equal(mt, apperrors.CodeValidationFailed, appErr.Code)
		assert.Contains(mt, appErr.Fields, "newEndDate")
	})

	mt.Run("UnknownFormIsNotFound", func(mt *mtest.T) {
		svc := NewService(mt.DB, zap.NewNop(), 2*time.Second)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "formdesk.forms", mtest.FirstBatch),
		)

		_, err := svc.ExtendEndDate(context.Background(), primitive.NewObjectID().Hex(), current)
		assert.True(mt, apperrors.Is(err, apperrors.CodeNotFound))
	})
}
