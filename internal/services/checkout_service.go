package services

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"

	"storefront/internal/models"
	"storefront/internal/payments"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckoutResult is returned to the client after a session is created:
// the hosted checkout URL to redirect to, plus the identities of the
// new order and session.
type CheckoutResult struct {
	URL       string `json:"url"`
	OrderID   string `json:"orderId"`
	SessionID string `json:"sessionId"`
}

// CheckoutService creates hosted checkout sessions and the matching
// pending orders.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	checkout  payments.CheckoutClient
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, checkout payments.CheckoutClient) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		checkout:  checkout,
	}
}

// CreateCheckoutSession validates the purchase request, computes the
// authoritative total, requests a hosted checkout session from the
// processor and persists a pending order keyed by the returned session
// id. Validation failures happen before any side effect.
func (s *CheckoutService) CreateCheckoutSession(items []models.OrderItem, email string) (*CheckoutResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || len(items) == 0 {
		return nil, fmt.Errorf("%w: email and at least one item are required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	// The total is always recomputed server-side from the submitted
	// unit prices and quantities; a client-supplied total is never read.
	var totalAmount float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", ErrInvalidInput)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: item price must not be negative", ErrInvalidInput)
		}
		totalAmount += item.Price * float64(item.Quantity)
	}
	totalAmount = math.Round(totalAmount*100) / 100
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be greater than 0", ErrInvalidInput)
	}

	sess, err := s.checkout.CreateSession(items, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamSession, err)
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		Items:           models.OrderItems(items),
		TotalAmount:     totalAmount,
		CustomerEmail:   email,
		PaymentStatus:   models.PaymentStatusPending,
		StripeSessionID: sess.ID,
	}

	if err := s.orderRepo.Create(order); err != nil {
		// The processor session now exists without a matching order.
		// There is no compensating cancellation; log the session id so
		// the orphan can be reconciled out of band.
		log.Printf("ORPHANED SESSION %s: checkout session created but order persistence failed: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Printf("Order %s created for checkout session %s (total %.2f)", order.ID, sess.ID, totalAmount)

	return &CheckoutResult{
		URL:       sess.URL,
		OrderID:   order.ID,
		SessionID: sess.ID,
	}, nil
}
