package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It enforces the same semantics as the GORM implementation: one order
// per session id and pending-only terminal transitions.
type MockOrderRepository struct {
	orders map[string]models.Order // keyed by stripe session id
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.StripeSessionID == "" {
		return fmt.Errorf("order is missing a stripe session ID")
	}
	if _, exists := r.orders[order.StripeSessionID]; exists {
		return fmt.Errorf("order with session ID %s already exists", order.StripeSessionID)
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.StripeSessionID] = *order
	return nil
}

// GetBySessionID returns an order by its Stripe session ID.
func (r *MockOrderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[sessionID]
	if !ok {
		return nil, fmt.Errorf("session ID %s: %w", sessionID, ErrOrderNotFound)
	}
	return &order, nil
}

// GetAll returns the most recent orders, newest first.
func (r *MockOrderRepository) GetAll(limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	if limit > 0 && len(orderList) > limit {
		orderList = orderList[:limit]
	}
	return orderList, nil
}

// MarkSucceeded transitions a pending order to succeeded.
func (r *MockOrderRepository) MarkSucceeded(sessionID, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[sessionID]
	if !ok || order.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	order.PaymentStatus = models.PaymentStatusSucceeded
	order.TransactionID = transactionID
	order.UpdatedAt = time.Now()
	r.orders[sessionID] = order
	return true, nil
}

// MarkFailed transitions a pending order to failed.
func (r *MockOrderRepository) MarkFailed(sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[sessionID]
	if !ok || order.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	order.PaymentStatus = models.PaymentStatusFailed
	order.UpdatedAt = time.Now()
	r.orders[sessionID] = order
	return true, nil
}

// Stats aggregates counts and revenue across all stored orders.
func (r *MockOrderRepository) Stats() (*models.OrderStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.OrderStats{}
	for _, order := range r.orders {
		stats.TotalOrders++
		switch order.PaymentStatus {
		case models.PaymentStatusSucceeded:
			stats.SuccessfulOrders++
			stats.TotalRevenue += order.TotalAmount
		case models.PaymentStatusFailed:
			stats.FailedOrders++
		case models.PaymentStatusPending:
			stats.PendingOrders++
		}
	}
	return stats, nil
}
