package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// listOrdersLimit caps the administrative listing.
const listOrdersLimit = 50

// OrderService exposes the read paths over the order store: the client
// polling after redirect, and the administrative listing and stats.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetOrderBySessionID returns the current order snapshot for a checkout
// session. The client may call this before the webhook has arrived, in
// which case the order is still pending.
func (s *OrderService) GetOrderBySessionID(sessionID string) (*models.Order, error) {
	order, err := s.orderRepo.GetBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: no order for session %s", ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return order, nil
}

// GetRecentOrders returns the latest orders, newest first.
func (s *OrderService) GetRecentOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(listOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return orders, nil
}

// GetStats returns aggregate order counts and revenue.
func (s *OrderService) GetStats() (*models.OrderStats, error) {
	stats, err := s.orderRepo.Stats()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stats, nil
}
