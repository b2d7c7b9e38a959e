// Package payments reconciles a submission's payment lifecycle with the
// external gateway: order creation up front, asynchronous webhook events
// afterwards. Webhook delivery is treated as at-least-once and unordered.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"Backend-FormDesk/src/apperrors"
	"Backend-FormDesk/src/database"
	"Backend-FormDesk/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const currency = "INR"

type Service struct {
	submissions   *mongo.Collection
	forms         *mongo.Collection
	gateway       OrderGateway
	webhookSecret []byte
	logger        *zap.Logger
	timeout       time.Duration
}

func NewService(m *database.Mongo, gateway OrderGateway, webhookSecret string, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		submissions:   m.DB.Collection(database.SubmissionsCollection),
		forms:         m.DB.Collection(database.FormsCollection),
		gateway:       gateway,
		webhookSecret: []byte(webhookSecret),
		logger:        logger,
		timeout:       timeout,
	}
}

// CreateOrder requests a gateway order for a submission's template amount.
// A fresh order is only created while the payment is Pending with no order
// yet; asking again while Pending returns the stored order instead of
// opening a second one at the gateway.
func (s *Service) CreateOrder(ctx context.Context, submissionID string) (*models.OrderDetails, error) {
	oid, err := primitive.ObjectIDFromHex(submissionID)
	if err != nil {
		return nil, apperrors.NotFound("submission")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var sub models.Submission
	if err := s.submissions.FindOne(cctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("submission")
		}
		return nil, apperrors.Unavailable(err)
	}

	var form models.Form
	if err := s.forms.FindOne(cctx, bson.M{"_id": sub.FormID}).Decode(&form); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("form")
		}
		return nil, apperrors.Unavailable(err)
	}

	if !form.PaymentRequired || sub.PaymentStatus == nil {
		return nil, apperrors.PaymentNotRequired()
	}
	if *sub.PaymentStatus != models.PaymentPending {
		return nil, apperrors.OrderSettled(string(*sub.PaymentStatus))
	}
	if sub.PaymentDetails != nil && sub.PaymentDetails.OrderID != "" {
		return &models.OrderDetails{
			OrderID:  sub.PaymentDetails.OrderID,
			Amount:   sub.PaymentDetails.Amount,
			Currency: sub.PaymentDetails.Currency,
			Receipt:  sub.PaymentDetails.Receipt,
		}, nil
	}

	amount := MinorUnits(*form.PaymentAmount)
	receipt := "rcpt_" + uuid.New().String()

	order, err := s.gateway.CreateOrder(amount, currency, receipt)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}

	// Guard against a concurrent CreateOrder for the same submission: only
	// the first writer attaches its order, everyone else reads it back.
	res, err := s.submissions.UpdateOne(cctx,
		bson.M{
			"_id":                    oid,
			"paymentStatus":          models.PaymentPending,
			"paymentDetails.orderId": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{
			"paymentDetails": models.PaymentDetails{
				Amount:   order.Amount,
				Currency: order.Currency,
				OrderID:  order.OrderID,
				Receipt:  order.Receipt,
			},
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		s.logger.Warn("concurrent order creation, returning stored order",
			zap.String("submissionId", submissionID))
		return s.storedOrder(cctx, oid)
	}

	s.logger.Info("payment order created",
		zap.String("submissionId", submissionID),
		zap.String("orderId", order.OrderID),
		zap.Int64("amount", order.Amount))

	return order, nil
}

func (s *Service) storedOrder(ctx context.Context, oid primitive.ObjectID) (*models.OrderDetails, error) {
	var sub models.Submission
	if err := s.submissions.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if sub.PaymentDetails == nil || sub.PaymentDetails.OrderID == "" {
		return nil, apperrors.Internal(nil)
	}
	return &models.OrderDetails{
		OrderID:  sub.PaymentDetails.OrderID,
		Amount:   sub.PaymentDetails.Amount,
		Currency: sub.PaymentDetails.Currency,
		Receipt:  sub.PaymentDetails.Receipt,
	}, nil
}

// MinorUnits converts a template amount to the gateway's minor currency
// units (rupees to paise).
func MinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// VerifySignature checks the webhook HMAC-SHA256 over the raw payload
// bytes against the signature header, in constant time.
func VerifySignature(raw []byte, signature string, secret []byte) bool {
	mac := hmac.New(sha256.New, secret)
	mac.Write(raw)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// WebhookEvent is the slice of the gateway notification the reconciler
// cares about.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// TargetStatus maps a gateway event kind to the payment status it implies.
// Unrecognized kinds are logged no-ops, never errors.
func TargetStatus(event string) (models.PaymentStatus, bool) {
	switch event {
	case "payment.captured", "order.paid":
		return models.PaymentCompleted, true
	case "payment.failed":
		return models.PaymentFailed, true
	case "payment.authorized":
		return models.PaymentAuthorized, true
	default:
		return "", false
	}
}

// priorStates lists the statuses a transition to target may start from.
// Terminal states never move and a status never moves backwards, which is
// what makes replays and out-of-order deliveries harmless.
func priorStates(target models.PaymentStatus) []models.PaymentStatus {
	var priors []models.PaymentStatus
	for _, st := range []models.PaymentStatus{models.PaymentPending, models.PaymentAuthorized} {
		if st.Rank() < target.Rank() {
			priors = append(priors, st)
		}
	}
	return priors
}

// HandleNotification processes one webhook delivery. It is idempotent:
// replays of an already-applied event leave the record unchanged and
// succeed.
func (s *Service) HandleNotification(ctx context.Context, raw []byte, signature string) error {
	if !VerifySignature(raw, signature, s.webhookSecret) {
		s.logger.Warn("webhook rejected: signature mismatch")
		return apperrors.InvalidSignature()
	}

	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		s.logger.Warn("webhook rejected: malformed payload", zap.Error(err))
		return apperrors.MalformedPayload()
	}

	orderID := event.Payload.Payment.Entity.OrderID
	paymentID := event.Payload.Payment.Entity.ID
	if orderID == "" {
		return apperrors.NotFound("submission")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var sub models.Submission
	if err := s.submissions.FindOne(cctx, bson.M{"paymentDetails.orderId": orderID}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			s.logger.Warn("webhook for unknown order", zap.String("orderId", orderID))
			return apperrors.NotFound("submission")
		}
		return apperrors.Unavailable(err)
	}

	target, recognized := TargetStatus(event.Event)
	if !recognized {
		s.logger.Info("webhook event ignored",
			zap.String("event", event.Event),
			zap.String("orderId", orderID))
		return nil
	}

	// Compare-and-set scoped by order id: only a forward transition from an
	// allowed prior state applies. A replay or an out-of-order stale event
	// matches nothing and falls through as a no-op.
	res, err := s.submissions.UpdateOne(cctx,
		bson.M{
			"paymentDetails.orderId": orderID,
			"paymentStatus":          bson.M{"$in": priorStates(target)},
		},
		bson.M{"$set": bson.M{
			"paymentStatus":            target,
			"paymentDetails.paymentId": paymentID,
			"paymentDetails.signature": signature,
			"updatedAt":                time.Now(),
		}},
	)
	if err != nil {
		return apperrors.Unavailable(err)
	}

	if res.MatchedCount == 0 {
		current := ""
		if sub.PaymentStatus != nil {
			current = string(*sub.PaymentStatus)
		}
		s.logger.Info("webhook replay or stale event, no transition",
			zap.String("event", event.Event),
			zap.String("orderId", orderID),
			zap.String("status", current))
		return nil
	}

	s.logger.Info("payment status transitioned",
		zap.String("orderId", orderID),
		zap.String("paymentId", paymentID),
		zap.String("event", event.Event),
		zap.String("to", string(target)))

	return nil
}
