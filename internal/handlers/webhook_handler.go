package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives webhook deliveries from the payment processor.
type WebhookHandler struct {
	service *services.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		service: service,
	}
}

// RegisterRoutes registers the webhook route with the Fiber app.
// The route sits at the root, not under /api, matching the URL the
// processor is configured with.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/webhook", h.HandleWebhook)
}

// HandleWebhook verifies and dispatches a webhook event. Verification
// runs over the unparsed request bytes; once the payload is
// authenticated the response is always {received: true} so the
// processor stops redelivering.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")

	if err := h.service.ProcessEvent(payload, sigHeader); err != nil {
		log.Printf("Webhook rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	return c.JSON(fiber.Map{"received": true})
}
