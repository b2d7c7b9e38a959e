package submission

import (
	"testing"

	"Backend-FormDesk/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleForm() *models.Form {
	return &models.Form{
		ID:       primitive.NewObjectID(),
		FormName: "Tech Conference Registration",
		Fields: []models.FieldDefinition{
			{Name: "full_name", Label: "Full Name", Type: models.FieldText, Required: true},
			{Name: "email_address", Label: "Email Address", Type: models.FieldEmail, Required: true, Unique: true},
			{Name: "id_proof", Label: "ID Proof", Type: models.FieldFile},
		},
	}
}

func TestProject(t *testing.T) {
	form := sampleForm()

	t.Run("UnknownKeysDropped", func(t *testing.T) {
		projected := Project(form, map[string]string{
			"full_name":     "Asha Rao",
			"email_address": "asha@example.com",
			"$where":        "1==1",
			"is_admin":      "true",
		})
		assert.Equal(t, map[string]string{
			"full_name":     "Asha Rao",
			"email_address": "asha@example.com",
		}, projected)
	})

	t.Run("MissingKeysStayAbsent", func(t *testing.T) {
		projected := Project(form, map[string]string{"full_name": "Asha Rao"})
		_, present := projected["email_address"]
		assert.False(t, present)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, Project(form, nil))
	})
}

func TestSnapshot(t *testing.T) {
	form := sampleForm()
	snap := Snapshot(form)

	assert.Equal(t, "Tech Conference Registration", snap.FormName)
	assert.Len(t, snap.Fields, 3)
	assert.Equal(t, models.SnapshotField{
		Name: "full_name", Type: models.FieldText, Label: "Full Name",
	}, snap.Fields[0])

	// The snapshot must not alias the template's field slice.
	form.Fields[0].Label = "Renamed"
	assert.Equal(t, "Full Name", snap.Fields[0].Label)
}

func TestResult(t *testing.T) {
	sub := &models.Submission{
		ID:        primitive.NewObjectID(),
		Responses: map[string]string{"full_name": "Asha Rao"},
	}

	res := Result(sub, true)
	assert.Equal(t, sub.ID, res.SubmissionID)
	assert.True(t, res.PaymentRequired)
	assert.Equal(t, sub.Responses, res.Responses)
}
