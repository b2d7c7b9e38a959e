package exports

import (
	"bytes"
	"testing"
	"time"

	"Backend-FormDesk/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testSubmission() *models.Submission {
	completed := models.PaymentCompleted
	return &models.Submission{
		ID:     primitive.NewObjectID(),
		FormID: primitive.NewObjectID(),
		Responses: map[string]string{
			"full_name":     "Asha Rao",
			"email_address": "asha@example.com",
		},
		FormSnapshot: models.FormSnapshot{
			FormName: "Tech Conference Registration",
			Fields: []models.SnapshotField{
				{Name: "full_name", Type: models.FieldText, Label: "Full Name"},
				{Name: "email_address", Type: models.FieldEmail, Label: "Email Address"},
			},
		},
		UploadedFiles: []models.UploadedFile{
			{FieldName: "id_proof", OriginalName: "passport.pdf", FileID: primitive.NewObjectID()},
		},
		PaymentStatus: &completed,
		CreatedAt:     time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildFormsWorkbook(t *testing.T) {
	amount := 500.0
	forms := []models.Form{
		{
			ID:              primitive.NewObjectID(),
			FormName:        "Conference",
			Status:          models.FormActive,
			StartDate:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			PaymentRequired: true,
			PaymentAmount:   &amount,
			Fields: []models.FieldDefinition{
				{Name: "full_name", Label: "Full Name", Type: models.FieldText},
			},
		},
		{
			ID:       primitive.NewObjectID(),
			FormName: "Workshop",
			Status:   models.FormInactive,
			Fields: []models.FieldDefinition{
				{Name: "email_address", Label: "Email Address", Type: models.FieldEmail},
			},
		},
	}

	f, err := BuildFormsWorkbook(forms)
	require.NoError(t, err)

	rows, err := f.GetRows("Forms")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Contains(t, header, "Form Name")
	assert.Contains(t, header, "Full Name")
	assert.Contains(t, header, "Email Address")

	assert.Contains(t, rows[1], "Conference")
	assert.Contains(t, rows[1], "500.00")
	assert.Contains(t, rows[2], "Workshop")
	assert.Contains(t, rows[2], "N/A")
}

func TestBuildSubmissionsWorkbook(t *testing.T) {
	sub := testSubmission()

	f, err := BuildSubmissionsWorkbook("Tech Conference Registration", []models.Submission{*sub})
	require.NoError(t, err)

	rows, err := f.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "Submission ID", header[0])
	assert.Contains(t, header, "full_name")
	assert.Contains(t, header, "Payment Status")

	assert.Contains(t, rows[1], "Asha Rao")
	assert.Contains(t, rows[1], "Completed")
	assert.Contains(t, rows[1], "id_proof (passport.pdf)")
}

func TestBuildSubmissionsWorkbookEmpty(t *testing.T) {
	f, err := BuildSubmissionsWorkbook("Empty Form", nil)
	require.NoError(t, err)

	rows, err := f.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestBuildReceipt(t *testing.T) {
	var buf bytes.Buffer
	err := BuildReceipt(testSubmission(), &buf)
	require.NoError(t, err)

	// PDF magic bytes
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestResponseKeyUnionFallsBackWithoutSnapshot(t *testing.T) {
	subs := []models.Submission{
		{Responses: map[string]string{"b_key": "1", "a_key": "2"}},
	}
	assert.Equal(t, []string{"a_key", "b_key"}, responseKeyUnion(subs))
}
