package payments

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Client wraps the bits of Stripe this service touches: creating
// PaymentIntents for confirmed bookings and verifying webhook deliveries.
type Client struct {
	webhookSecret string
}

func NewClient(secretKey, webhookSecret string) *Client {
	stripe.Key = secretKey
	return &Client{webhookSecret: webhookSecret}
}

type IntentRequest struct {
	Amount   float64
	Currency string

	SessionID      uint
	UserID         uint
	OriginalAmount float64
	DiscountAmount float64
}

// CreateIntent creates a PaymentIntent for the discounted amount. Stripe
// bills in the currency's minor unit, so the amount is converted to cents.
func (c *Client) CreateIntent(req IntentRequest) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency: stripe.String(req.Currency),
	}
	params.AddMetadata("session_id", fmt.Sprintf("%d", req.SessionID))
	params.AddMetadata("user_id", fmt.Sprintf("%d", req.UserID))
	params.AddMetadata("original_amount", fmt.Sprintf("%.2f", req.OriginalAmount))
	params.AddMetadata("discount_amount", fmt.Sprintf("%.2f", req.DiscountAmount))

	return paymentintent.New(params)
}

// VerifyWebhook checks the Stripe-Signature header against the endpoint
// secret and parses the event.
func (c *Client) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}
