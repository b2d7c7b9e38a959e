package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the payment state of a submission.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentAuthorized PaymentStatus = "Authorized"
	PaymentCompleted  PaymentStatus = "Completed"
	PaymentFailed     PaymentStatus = "Failed"
)

// Rank orders payment states so that webhook replays and out-of-order
// deliveries can never move a settled payment backwards.
func (s PaymentStatus) Rank() int {
	switch s {
	case PaymentPending:
		return 0
	case PaymentAuthorized:
		return 1
	case PaymentCompleted, PaymentFailed:
		return 2
	default:
		return -1
	}
}

// Terminal reports whether no further transition is allowed.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

// UploadedFile links a file-type field to a blob already stored in GridFS.
type UploadedFile struct {
	FieldName    string             `bson:"fieldName" json:"fieldName"`
	OriginalName string             `bson:"originalName" json:"originalName"`
	FileID       primitive.ObjectID `bson:"fileId" json:"fileId"`
}

// SnapshotField is the frozen subset of a field definition kept with the
// submission so later template edits cannot reinterpret old answers.
type SnapshotField struct {
	Name  string    `bson:"name" json:"name"`
	Type  FieldType `bson:"type" json:"type"`
	Label string    `bson:"label" json:"label"`
}

type FormSnapshot struct {
	FormName string          `bson:"formName" json:"formName"`
	Fields   []SnapshotField `bson:"fields" json:"fields"`
}

type PaymentDetails struct {
	Amount    int64  `bson:"amount,omitempty" json:"amount,omitempty"` // minor currency units
	Currency  string `bson:"currency,omitempty" json:"currency,omitempty"`
	OrderID   string `bson:"orderId,omitempty" json:"orderId,omitempty"`
	PaymentID string `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Signature string `bson:"signature,omitempty" json:"signature,omitempty"`
	Receipt   string `bson:"receipt,omitempty" json:"receipt,omitempty"`
}

// --- Submission ---
// PaymentStatus is a pointer: it only exists when the template required
// payment at submission time.
type Submission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormID         primitive.ObjectID `bson:"formId" json:"formId"`
	Responses      map[string]string  `bson:"responses" json:"responses"`
	UploadedFiles  []UploadedFile     `bson:"uploadedFiles,omitempty" json:"uploadedFiles,omitempty"`
	FormSnapshot   FormSnapshot       `bson:"formSnapshot" json:"formSnapshot"`
	PaymentStatus  *PaymentStatus     `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	PaymentDetails *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UniqueClaim reserves a unique field value for one form. The compound
// unique index on (formId, field, value) is the real duplicate barrier;
// claims are inserted in the same transaction as the submission.
type UniqueClaim struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FormID       primitive.ObjectID `bson:"formId" json:"formId"`
	Field        string             `bson:"field" json:"field"`
	Value        string             `bson:"value" json:"value"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
}

// SubmitResult is what the intake pipeline hands back to the caller.
type SubmitResult struct {
	SubmissionID    primitive.ObjectID `json:"submissionId"`
	PaymentRequired bool               `json:"paymentRequired"`
	Responses       map[string]string  `json:"data"`
}

// OrderDetails mirrors the gateway order stored on the submission.
type OrderDetails struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
