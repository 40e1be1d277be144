package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/payments"
	"storefront/internal/repositories"

	"github.com/stripe/stripe-go/v80"
)

// EventPublisher publishes messages for downstream consumers, such as
// the confirmation-email sender. Satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// WebhookService reconciles processor webhook events against local
// orders. Events are verified before anything else; once a payload is
// authenticated the outcome is always a positive acknowledgment, since
// Stripe delivers at least once and retries on anything else.
type WebhookService struct {
	orderRepo repositories.OrderRepository
	checkout  payments.CheckoutClient
	publisher EventPublisher // may be nil when messaging is disabled
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(orderRepo repositories.OrderRepository, checkout payments.CheckoutClient, publisher EventPublisher) *WebhookService {
	return &WebhookService{
		orderRepo: orderRepo,
		checkout:  checkout,
		publisher: publisher,
	}
}

// ProcessEvent verifies the raw payload and applies the resulting state
// transition. The only error it returns is ErrInvalidSignature; every
// authenticated outcome, including unknown sessions and redeliveries,
// is a nil return so the transport can acknowledge receipt.
func (s *WebhookService) ProcessEvent(payload []byte, sigHeader string) error {
	event, err := s.checkout.VerifyEvent(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	log.Printf("Webhook received: %s", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		s.handleSessionCompleted(event)
	case "checkout.session.expired", "payment_intent.payment_failed":
		s.handlePaymentFailed(event)
	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	return nil
}

// handleSessionCompleted transitions the matching order to succeeded
// and records the payment reference. Redeliveries and contradicting
// later events are no-ops: the store only transitions pending rows.
func (s *WebhookService) handleSessionCompleted(event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Printf("Failed to decode checkout session from event %s: %v", event.ID, err)
		return
	}

	transactionID := ""
	if sess.PaymentIntent != nil {
		transactionID = sess.PaymentIntent.ID
	}

	updated, err := s.orderRepo.MarkSucceeded(sess.ID, transactionID)
	if err != nil {
		log.Printf("Error updating order for session %s: %v", sess.ID, err)
		return
	}
	if !updated {
		s.logSkippedTransition(sess.ID, "succeeded")
		return
	}

	log.Printf("Order updated to succeeded for session %s", sess.ID)
	s.publishPaymentEvent("payment.succeeded", sess.ID, transactionID)
}

// handlePaymentFailed marks the matching order failed. Expired sessions
// carry the session id directly; failed payment intents carry no
// session reference, so the intent id and latest charge are tried and
// usually miss, which is logged and acknowledged.
func (s *WebhookService) handlePaymentFailed(event stripe.Event) {
	var obj struct {
		ID           string `json:"id"`
		LatestCharge string `json:"latest_charge"`
	}
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		log.Printf("Failed to decode payload from event %s: %v", event.ID, err)
		return
	}

	ref := obj.ID
	if ref == "" {
		ref = obj.LatestCharge
	}

	updated, err := s.orderRepo.MarkFailed(ref)
	if err != nil {
		log.Printf("Error updating failed order for %s: %v", ref, err)
		return
	}
	if !updated {
		s.logSkippedTransition(ref, "failed")
		return
	}

	log.Printf("Order marked as failed for session %s", ref)
	s.publishPaymentEvent("payment.failed", ref, "")
}

// logSkippedTransition records why a conditional update touched no row:
// either no order exists for the session, or the order already reached
// a terminal state and must not move again.
func (s *WebhookService) logSkippedTransition(sessionID string, target string) {
	order, err := s.orderRepo.GetBySessionID(sessionID)
	switch {
	case errors.Is(err, repositories.ErrOrderNotFound):
		log.Printf("Order not found for session %s, ignoring %s event", sessionID, target)
	case err != nil:
		log.Printf("Error looking up order for session %s: %v", sessionID, err)
	default:
		log.Printf("Order for session %s already %s, skipping transition to %s",
			sessionID, order.PaymentStatus, target)
	}
}

// publishPaymentEvent hands the transition to the notification queue.
// Publishing is fire-and-forget: a failure is logged and never delays
// or blocks the webhook acknowledgment.
func (s *WebhookService) publishPaymentEvent(kind, sessionID, transactionID string) {
	if s.publisher == nil {
		log.Println("Message publisher is not initialized. Skipping payment event publication.")
		return
	}

	message := map[string]interface{}{
		"type":          kind,
		"sessionId":     sessionID,
		"transactionId": transactionID,
		"occurredAt":    time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal payment event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish("", "payment_events", body); err != nil {
		log.Printf("Warning: Failed to publish %s event for session %s: %v", kind, sessionID, err)
	}
}
