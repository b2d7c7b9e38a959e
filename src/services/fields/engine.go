// Package fields is the rule engine of the intake pipeline: it checks one
// submitted value against one field definition. Pure functions, no I/O.
package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"Backend-FormDesk/src/models"

	"github.com/go-playground/validator/v10"
)

// ViolationKind classifies why a value was rejected.
type ViolationKind string

const (
	MissingRequiredValue ViolationKind = "MissingRequiredValue"
	FormatMismatch       ViolationKind = "FormatMismatch"
	OutOfRange           ViolationKind = "OutOfRange"
)

// RuleViolation is the structured result for one failed field. Engine
// functions never return Go errors for expected conditions.
type RuleViolation struct {
	Kind    ViolationKind
	Message string
}

var (
	validate = validator.New()

	nationalIDRe = regexp.MustCompile(`^\d{12}$`)
	phoneRe      = regexp.MustCompile(`^[6-9]\d{9}$`)
)

const passwordSymbols = "!@#$%^&*"
const dateLayout = "2006-01-02"

// Validate checks a single value against a field definition. A nil result
// means the value is acceptable, including an absent optional value.
func Validate(field models.FieldDefinition, value string, present bool) *RuleViolation {
	if !present || strings.TrimSpace(value) == "" {
		if field.Required {
			return &RuleViolation{
				Kind:    MissingRequiredValue,
				Message: fmt.Sprintf("%s is required.", field.Label),
			}
		}
		return nil
	}

	if v := checkSemantic(field, value); v != nil {
		return v
	}
	return checkConstraints(field, value)
}

// ValidateAll runs every field of the template against the projected
// responses and returns the complete per-field error map in one pass.
// A required file field is satisfied by an uploaded file instead of a
// response value.
func ValidateAll(flds []models.FieldDefinition, responses map[string]string, uploaded map[string]bool) map[string]string {
	errs := make(map[string]string)
	for _, field := range flds {
		if field.Type == models.FieldFile {
			if field.Required && !uploaded[field.Name] {
				errs[field.Name] = fmt.Sprintf("%s is required.", field.Label)
			}
			continue
		}

		value, present := responses[field.Name]
		if v := Validate(field, value, present); v != nil {
			errs[field.Name] = v.Message
		}
	}
	return errs
}

func checkSemantic(field models.FieldDefinition, value string) *RuleViolation {
	kind := field.SemanticKind
	// Field type implies a semantic check even when the author left the
	// kind generic.
	if kind == models.KindGeneric || kind == "" {
		switch field.Type {
		case models.FieldEmail:
			kind = models.KindEmail
		case models.FieldTel:
			kind = models.KindPhone
		case models.FieldPassword:
			kind = models.KindPassword
		}
	}

	switch kind {
	case models.KindEmail:
		if err := validate.Var(value, "email"); err != nil {
			return &RuleViolation{Kind: FormatMismatch, Message: "Invalid email format."}
		}
	case models.KindNationalID:
		if !nationalIDRe.MatchString(value) {
			return &RuleViolation{Kind: FormatMismatch, Message: "Aadhaar must be a 12-digit number."}
		}
	case models.KindPhone:
		if !phoneRe.MatchString(value) {
			return &RuleViolation{Kind: FormatMismatch, Message: "Invalid contact number."}
		}
	case models.KindPassword:
		if !strongPassword(value) {
			return &RuleViolation{
				Kind:    FormatMismatch,
				Message: "Password must be strong (uppercase, lowercase, digit, special char, min 8).",
			}
		}
	}
	return nil
}

func checkConstraints(field models.FieldDefinition, value string) *RuleViolation {
	length := len([]rune(value))
	if field.MinLength != nil && length < *field.MinLength {
		return outOfRange("%s must be at least %d characters.", field.Label, *field.MinLength)
	}
	if field.MaxLength != nil && length > *field.MaxLength {
		return outOfRange("%s must be at most %d characters.", field.Label, *field.MaxLength)
	}

	if field.Pattern != "" {
		if re, err := regexp.Compile(field.Pattern); err == nil && !re.MatchString(value) {
			return &RuleViolation{
				Kind:    FormatMismatch,
				Message: fmt.Sprintf("%s has an invalid format.", field.Label),
			}
		}
	}

	switch field.Type {
	case models.FieldNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &RuleViolation{Kind: FormatMismatch, Message: fmt.Sprintf("%s must be a number.", field.Label)}
		}
		if field.Min != nil && n < *field.Min {
			return outOfRange("%s must be at least %v.", field.Label, *field.Min)
		}
		if field.Max != nil && n > *field.Max {
			return outOfRange("%s must be at most %v.", field.Label, *field.Max)
		}

	case models.FieldDate:
		d, err := time.Parse(dateLayout, value)
		if err != nil {
			return &RuleViolation{Kind: FormatMismatch, Message: fmt.Sprintf("%s must be a date (YYYY-MM-DD).", field.Label)}
		}
		if field.DateMin != nil {
			if min, err := time.Parse(dateLayout, *field.DateMin); err == nil && d.Before(min) {
				return outOfRange("%s must not be before %s.", field.Label, *field.DateMin)
			}
		}
		if field.DateMax != nil {
			if max, err := time.Parse(dateLayout, *field.DateMax); err == nil && d.After(max) {
				return outOfRange("%s must not be after %s.", field.Label, *field.DateMax)
			}
		}

	case models.FieldSelect, models.FieldRadio:
		for _, opt := range field.Options {
			if value == opt {
				return nil
			}
		}
		if len(field.Options) > 0 {
			return outOfRange("%s must be one of the available options.", field.Label)
		}
	}

	return nil
}

func strongPassword(value string) bool {
	if len(value) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func outOfRange(format string, args ...interface{}) *RuleViolation {
	return &RuleViolation{Kind: OutOfRange, Message: fmt.Sprintf(format, args...)}
}
