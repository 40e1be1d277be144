package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order reads.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the public order route with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/order/:sessionId", h.HandleGetOrderBySessionID)
}

// RegisterAdminRoutes registers the administrative listing and stats
// routes; the caller wraps them in the auth middleware.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleGetOrders)
	router.Get("/orders/stats", h.HandleGetOrderStats)
}

// HandleGetOrderBySessionID returns the order snapshot for a checkout
// session. Clients poll this after the redirect and may see a pending
// status until the webhook lands.
func (h *OrderHandler) HandleGetOrderBySessionID(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	order, err := h.service.GetOrderBySessionID(sessionID)
	if err != nil {
		log.Printf("Error getting order by session ID %s: %v", sessionID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrders retrieves the most recent orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetRecentOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"count":  len(orders),
		"orders": orders,
	})
}

// HandleGetOrderStats retrieves aggregate order statistics.
func (h *OrderHandler) HandleGetOrderStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("Error getting order statistics: %v", err)
		return respondError(c, err)
	}
	return c.JSON(stats)
}
