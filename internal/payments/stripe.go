package payments

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"storefront/internal/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// CheckoutSession is the subset of a hosted checkout session the service
// needs: the opaque session id and the URL to redirect the customer to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutClient is the only point of contact with the payment
// processor. Keeping it narrow lets tests swap in a stub and keeps
// processor types out of the rest of the service, except for the
// verified event handed to the reconciler.
type CheckoutClient interface {
	CreateSession(items []models.OrderItem, email string) (*CheckoutSession, error)
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

// StripeClient implements CheckoutClient against the Stripe API.
type StripeClient struct {
	webhookSecret string
	clientURL     string
}

// NewStripeClient configures the Stripe SDK and returns a client.
// clientURL is the storefront origin the customer is redirected back to.
func NewStripeClient(secretKey, webhookSecret, clientURL string) *StripeClient {
	stripe.Key = secretKey
	// Session creation must fail fast rather than hold the checkout
	// request open.
	stripe.SetHTTPClient(&http.Client{Timeout: 15 * time.Second})
	return &StripeClient{
		webhookSecret: webhookSecret,
		clientURL:     clientURL,
	}
}

// CreateSession creates a hosted checkout session for the given line
// items. Unit prices are converted to minor units (cents) here; the
// caller has already computed and validated the authoritative total.
func (c *StripeClient) CreateSession(items []models.OrderItem, email string) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		if item.Image != "" {
			productData.Images = stripe.StringSlice([]string{item.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(c.clientURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(c.clientURL + "/failed"),
		CustomerEmail:      stripe.String(email),
	}
	params.AddMetadata("customer_email", email)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyEvent checks the webhook signature over the exact raw payload
// bytes and returns the parsed event. Verification is byte-exact, so the
// payload must never be re-serialized before this call.
func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}
