package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormStatus is the lifecycle state of a registration form.
type FormStatus string

const (
	FormActive   FormStatus = "Active"
	FormInactive FormStatus = "Inactive"
)

// FieldType enumerates the supported input types of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
	FieldPassword FieldType = "password"
)

// SemanticKind marks what a field means, not how it renders. It is resolved
// once at authoring time so validation never has to guess from field names.
type SemanticKind string

const (
	KindGeneric    SemanticKind = "generic"
	KindEmail      SemanticKind = "email"
	KindNationalID SemanticKind = "nationalId"
	KindPassword   SemanticKind = "password"
	KindPhone      SemanticKind = "phone"
)

// --- FieldDefinition ---
// name is the canonical response key (slug of the label); every constraint
// is optional and only enforced when set.
type FieldDefinition struct {
	Name         string       `bson:"name" json:"name"`
	Label        string       `bson:"label" json:"label"`
	Type         FieldType    `bson:"type" json:"type"`
	Required     bool         `bson:"required" json:"required"`
	Placeholder  string       `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	SemanticKind SemanticKind `bson:"semanticKind" json:"semanticKind"`
	Unique       bool         `bson:"unique" json:"unique"`

	MinLength *int     `bson:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int     `bson:"maxLength,omitempty" json:"maxLength,omitempty"`
	Min       *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Pattern   string   `bson:"pattern,omitempty" json:"pattern,omitempty"`
	DateMin   *string  `bson:"dateMin,omitempty" json:"dateMin,omitempty"`
	DateMax   *string  `bson:"dateMax,omitempty" json:"dateMax,omitempty"`
	Options   []string `bson:"options,omitempty" json:"options,omitempty"`
}

// --- Form ---
type Form struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormName        string             `bson:"formName" json:"formName"`
	Status          FormStatus         `bson:"status" json:"status"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	PaymentRequired bool               `bson:"paymentRequired" json:"paymentRequired"`
	PaymentAmount   *float64           `bson:"paymentAmount,omitempty" json:"paymentAmount,omitempty"`
	Fields          []FieldDefinition  `bson:"fields" json:"fields"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// FieldByName returns the definition for a canonical field name.
func (f *Form) FieldByName(name string) (*FieldDefinition, bool) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// --- Input DTOs ---

type CreateFieldRequest struct {
	Label        string       `json:"label" validate:"required"`
	Name         string       `json:"name"`
	Type         FieldType    `json:"type" validate:"required"`
	Required     bool         `json:"required"`
	SemanticKind SemanticKind `json:"semanticKind"`
	Unique       *bool        `json:"unique"`
	MinLength    *int         `json:"minLength"`
	MaxLength    *int         `json:"maxLength"`
	Min          *float64     `json:"min"`
	Max          *float64     `json:"max"`
	Pattern      string       `json:"pattern"`
	DateMin      *string      `json:"dateMin"`
	DateMax      *string      `json:"dateMax"`
	Options      []string     `json:"options"`
}

type CreateFormRequest struct {
	FormName        string               `json:"formName" validate:"required"`
	StartDate       time.Time            `json:"startDate" validate:"required"`
	EndDate         time.Time            `json:"endDate" validate:"required"`
	Status          FormStatus           `json:"status" validate:"required,oneof=Active Inactive"`
	PaymentRequired bool                 `json:"paymentRequired"`
	PaymentAmount   *float64             `json:"paymentAmount"`
	Fields          []CreateFieldRequest `json:"fields" validate:"required,min=1,dive"`
}

type ExtendFormRequest struct {
	NewEndDate time.Time `json:"newEndDate" validate:"required"`
}
