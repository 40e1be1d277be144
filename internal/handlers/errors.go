package handlers

import (
	"errors"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to an HTTP status and the
// {error, details} body shape the client expects. Details carry enough
// for a retry decision but no internal diagnostics or secrets.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request",
			"details": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Order not found",
			"details": "No order found with the provided session ID",
		})
	case errors.Is(err, services.ErrUpstreamSession):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to create checkout session",
			"details": "The payment provider could not be reached, please try again",
		})
	case errors.Is(err, services.ErrPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"details": "The order could not be stored, please try again",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}
