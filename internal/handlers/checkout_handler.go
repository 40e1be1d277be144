package handlers

import (
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout session creation.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/create-checkout-session", h.HandleCreateCheckoutSession)
}

// CheckoutRequest represents the request body for checkout session creation.
type CheckoutRequest struct {
	Items []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Email string             `json:"email" validate:"required,email"`
}

// HandleCreateCheckoutSession creates a hosted checkout session and the
// matching pending order, returning the redirect URL.
func (h *CheckoutHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Email and items are required",
			"details": errorMessages,
		})
	}

	result, err := h.service.CreateCheckoutSession(req.Items, req.Email)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return respondError(c, err)
	}

	return c.JSON(result)
}
