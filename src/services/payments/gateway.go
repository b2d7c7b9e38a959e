package payments

import (
	"fmt"

	"Backend-FormDesk/src/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderGateway is the one call the reconciler needs from the external
// payment provider. Keeping it this narrow lets tests substitute a stub
// and keeps the reconciler gateway-agnostic.
type OrderGateway interface {
	CreateOrder(amount int64, currency, receipt string) (*models.OrderDetails, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway wraps the Razorpay SDK client.
func NewRazorpayGateway(keyID, keySecret string) OrderGateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string) (*models.OrderDetails, error) {
	data := map[string]interface{}{
		"amount":   amount, // minor currency units
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order create: malformed response %v", body)
	}

	return &models.OrderDetails{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}
