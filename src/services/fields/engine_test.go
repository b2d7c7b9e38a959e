package fields

import (
	"testing"

	"Backend-FormDesk/src/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }
func strPtr(s string) *string   { return &s }

func TestValidateRequired(t *testing.T) {
	field := models.FieldDefinition{Name: "full_name", Label: "Full Name", Type: models.FieldText, Required: true}

	t.Run("MissingValue", func(t *testing.T) {
		v := Validate(field, "", false)
		assert.NotNil(t, v)
		assert.Equal(t, MissingRequiredValue, v.Kind)
		assert.Equal(t, "Full Name is required.", v.Message)
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		v := Validate(field, "   ", true)
		assert.NotNil(t, v)
		assert.Equal(t, MissingRequiredValue, v.Kind)
	})

	t.Run("OptionalFieldMayBeEmpty", func(t *testing.T) {
		optional := field
		optional.Required = false
		assert.Nil(t, Validate(optional, "", false))
	})

	t.Run("PresentValuePasses", func(t *testing.T) {
		assert.Nil(t, Validate(field, "Asha Rao", true))
	})
}

func TestValidateEmail(t *testing.T) {
	field := models.FieldDefinition{Name: "email_address", Label: "Email Address", Type: models.FieldEmail, Required: true}

	t.Run("ValidEmail", func(t *testing.T) {
		assert.Nil(t, Validate(field, "asha@example.com", true))
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		v := Validate(field, "not-an-email", true)
		assert.NotNil(t, v)
		assert.Equal(t, FormatMismatch, v.Kind)
	})

	t.Run("SemanticKindWinsOverGenericType", func(t *testing.T) {
		byKind := models.FieldDefinition{
			Name: "alt_email", Label: "Alt Email",
			Type: models.FieldText, SemanticKind: models.KindEmail, Required: true,
		}
		assert.NotNil(t, Validate(byKind, "nope", true))
		assert.Nil(t, Validate(byKind, "ok@example.com", true))
	})
}

func TestValidateNationalID(t *testing.T) {
	field := models.FieldDefinition{
		Name: "aadhaar_number", Label: "Aadhaar Number",
		Type: models.FieldText, SemanticKind: models.KindNationalID, Required: true,
	}

	t.Run("TwelveDigitsPass", func(t *testing.T) {
		assert.Nil(t, Validate(field, "123456789012", true))
	})

	t.Run("ElevenDigitsFail", func(t *testing.T) {
		v := Validate(field, "12345678901", true)
		assert.NotNil(t, v)
		assert.Equal(t, FormatMismatch, v.Kind)
	})

	t.Run("LettersFail", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "12345678901a", true))
	})
}

func TestValidatePhone(t *testing.T) {
	field := models.FieldDefinition{Name: "contact_number", Label: "Contact Number", Type: models.FieldTel, Required: true}

	t.Run("ValidIndianMobile", func(t *testing.T) {
		assert.Nil(t, Validate(field, "9876543210", true))
	})

	t.Run("WrongLeadingDigit", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "5876543210", true))
	})

	t.Run("TooShort", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "98765", true))
	})
}

func TestValidatePassword(t *testing.T) {
	field := models.FieldDefinition{Name: "password", Label: "Password", Type: models.FieldPassword, Required: true}

	t.Run("StrongPassword", func(t *testing.T) {
		assert.Nil(t, Validate(field, "Str0ng!pass", true))
	})

	t.Run("NoSymbol", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "Str0ngpass", true))
	})

	t.Run("NoUppercase", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "str0ng!pass", true))
	})

	t.Run("TooShort", func(t *testing.T) {
		assert.NotNil(t, Validate(field, "S0!a", true))
	})
}

func TestValidateConstraints(t *testing.T) {
	t.Run("LengthBounds", func(t *testing.T) {
		field := models.FieldDefinition{
			Name: "nickname", Label: "Nickname", Type: models.FieldText,
			MinLength: intPtr(3), MaxLength: intPtr(5),
		}
		assert.NotNil(t, Validate(field, "ab", true))
		assert.Nil(t, Validate(field, "abcd", true))
		assert.NotNil(t, Validate(field, "abcdef", true))
	})

	t.Run("CustomPattern", func(t *testing.T) {
		field := models.FieldDefinition{
			Name: "code", Label: "Code", Type: models.FieldText, Pattern: `^[A-Z]{3}\d{2}$`,
		}
		assert.Nil(t, Validate(field, "ABC12", true))
		v := Validate(field, "abc12", true)
		assert.NotNil(t, v)
		assert.Equal(t, FormatMismatch, v.Kind)
	})

	t.Run("NumberRange", func(t *testing.T) {
		field := models.FieldDefinition{
			Name: "age", Label: "Age", Type: models.FieldNumber,
			Min: f64Ptr(18), Max: f64Ptr(60),
		}
		assert.NotNil(t, Validate(field, "abc", true))
		assert.NotNil(t, Validate(field, "17", true))
		assert.Nil(t, Validate(field, "30", true))
		assert.NotNil(t, Validate(field, "61", true))
	})

	t.Run("DateWindow", func(t *testing.T) {
		field := models.FieldDefinition{
			Name: "dob", Label: "Date of Birth", Type: models.FieldDate,
			DateMin: strPtr("1990-01-01"), DateMax: strPtr("2008-12-31"),
		}
		assert.NotNil(t, Validate(field, "not-a-date", true))
		assert.NotNil(t, Validate(field, "1989-12-31", true))
		assert.Nil(t, Validate(field, "2000-06-15", true))
		assert.NotNil(t, Validate(field, "2009-01-01", true))
	})

	t.Run("SelectOptions", func(t *testing.T) {
		field := models.FieldDefinition{
			Name: "role", Label: "Role", Type: models.FieldSelect,
			Options: []string{"Developer", "Designer"},
		}
		assert.Nil(t, Validate(field, "Developer", true))
		v := Validate(field, "Chef", true)
		assert.NotNil(t, v)
		assert.Equal(t, OutOfRange, v.Kind)
	})
}

func TestValidateAll(t *testing.T) {
	flds := []models.FieldDefinition{
		{Name: "full_name", Label: "Full Name", Type: models.FieldText, Required: true},
		{Name: "email_address", Label: "Email Address", Type: models.FieldEmail, Required: true},
		{Name: "id_proof", Label: "ID Proof", Type: models.FieldFile, Required: true},
		{Name: "notes", Label: "Notes", Type: models.FieldText},
	}

	t.Run("AllValid", func(t *testing.T) {
		errs := ValidateAll(flds, map[string]string{
			"full_name":     "Asha Rao",
			"email_address": "asha@example.com",
		}, map[string]bool{"id_proof": true})
		assert.Empty(t, errs)
	})

	t.Run("CollectsEveryFailure", func(t *testing.T) {
		errs := ValidateAll(flds, map[string]string{
			"email_address": "bad",
		}, nil)
		assert.Len(t, errs, 3)
		assert.Contains(t, errs, "full_name")
		assert.Contains(t, errs, "email_address")
		assert.Contains(t, errs, "id_proof")
	})

	t.Run("RequiredFileSatisfiedByUpload", func(t *testing.T) {
		errs := ValidateAll(flds, map[string]string{
			"full_name":     "Asha Rao",
			"email_address": "asha@example.com",
		}, nil)
		assert.Contains(t, errs, "id_proof")
	})
}
