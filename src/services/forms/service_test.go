package forms

import (
	"testing"

	"Backend-FormDesk/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Full Name":       "full_name",
		"  Email Address": "email_address",
		"Aadhaar Number":  "aadhaar_number",
		"D.O.B. (Date)":   "dob_date",
		"UPPER":           "upper",
	}
	for label, want := range cases {
		assert.Equal(t, want, Slugify(label), "label %q", label)
	}
}

func TestInferSemanticKind(t *testing.T) {
	t.Run("FieldTypeWins", func(t *testing.T) {
		assert.Equal(t, models.KindEmail, InferSemanticKind("anything", models.FieldEmail))
		assert.Equal(t, models.KindPhone, InferSemanticKind("anything", models.FieldTel))
		assert.Equal(t, models.KindPassword, InferSemanticKind("anything", models.FieldPassword))
	})

	t.Run("NameHeuristics", func(t *testing.T) {
		assert.Equal(t, models.KindNationalID, InferSemanticKind("aadhaar_number", models.FieldText))
		assert.Equal(t, models.KindNationalID, InferSemanticKind("adhar_no", models.FieldText))
		assert.Equal(t, models.KindPassword, InferSemanticKind("account_password", models.FieldText))
		assert.Equal(t, models.KindGeneric, InferSemanticKind("password_hint", models.FieldText))
		assert.Equal(t, models.KindPhone, InferSemanticKind("contact_number", models.FieldText))
		assert.Equal(t, models.KindPhone, InferSemanticKind("mobile", models.FieldText))
		assert.Equal(t, models.KindEmail, InferSemanticKind("email", models.FieldText))
		assert.Equal(t, models.KindGeneric, InferSemanticKind("full_name", models.FieldText))
	})
}

func TestNormalizeField(t *testing.T) {
	t.Run("SlugAndKindResolvedAtAuthoring", func(t *testing.T) {
		field, err := NormalizeField(models.CreateFieldRequest{
			Label: "Aadhaar Number", Type: models.FieldText, Required: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "aadhaar_number", field.Name)
		assert.Equal(t, models.KindNationalID, field.SemanticKind)
	})

	t.Run("IdentityFieldsDefaultUnique", func(t *testing.T) {
		aadhaar, err := NormalizeField(models.CreateFieldRequest{Label: "Aadhaar Number", Type: models.FieldText})
		require.NoError(t, err)
		assert.True(t, aadhaar.Unique)

		email, err := NormalizeField(models.CreateFieldRequest{Label: "Email Address", Type: models.FieldEmail})
		require.NoError(t, err)
		assert.True(t, email.Unique)

		name, err := NormalizeField(models.CreateFieldRequest{Label: "Full Name", Type: models.FieldText})
		require.NoError(t, err)
		assert.False(t, name.Unique)
	})

	t.Run("AuthorOverridesUnique", func(t *testing.T) {
		no := false
		field, err := NormalizeField(models.CreateFieldRequest{
			Label: "Email Address", Type: models.FieldEmail, Unique: &no,
		})
		require.NoError(t, err)
		assert.False(t, field.Unique)

		yes := true
		field, err = NormalizeField(models.CreateFieldRequest{
			Label: "Nickname", Type: models.FieldText, Unique: &yes,
		})
		require.NoError(t, err)
		assert.True(t, field.Unique)
	})

	t.Run("ExplicitNameKept", func(t *testing.T) {
		field, err := NormalizeField(models.CreateFieldRequest{
			Label: "Display Label", Name: "custom_key", Type: models.FieldText,
		})
		require.NoError(t, err)
		assert.Equal(t, "custom_key", field.Name)
	})

	t.Run("BadPatternRejected", func(t *testing.T) {
		_, err := NormalizeField(models.CreateFieldRequest{
			Label: "Code", Type: models.FieldText, Pattern: "([",
		})
		assert.Error(t, err)
	})

	t.Run("PlaceholderFilled", func(t *testing.T) {
		field, err := NormalizeField(models.CreateFieldRequest{Label: "Date of Birth", Type: models.FieldDate})
		require.NoError(t, err)
		assert.Equal(t, "YYYY-MM-DD", field.Placeholder)
	})
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "Enter full name", Placeholder(models.FieldDefinition{Label: "Full Name", Type: models.FieldText}))
	assert.Equal(t, "example@email.com", Placeholder(models.FieldDefinition{Type: models.FieldEmail}))
	assert.Equal(t, "Select an option", Placeholder(models.FieldDefinition{Type: models.FieldRadio}))
	assert.Equal(t, "", Placeholder(models.FieldDefinition{Type: models.FieldCheckbox}))
}
