package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestOrderService_GetOrderBySessionID(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	expected := &models.Order{
		ID:              "order-1",
		StripeSessionID: "cs_1",
		PaymentStatus:   models.PaymentStatusPending,
		TotalAmount:     159.98,
	}

	mockRepo.On("GetBySessionID", "cs_1").Return(expected, nil).Once()
	order, err := service.GetOrderBySessionID("cs_1")
	assert.NoError(t, err)
	assert.Equal(t, expected, order)
	mockRepo.AssertExpectations(t)

	// Lookup miss maps to ErrNotFound
	mockRepo.On("GetBySessionID", "cs_missing").
		Return(nil, fmt.Errorf("session ID cs_missing: %w", repositories.ErrOrderNotFound)).Once()
	order, err = service.GetOrderBySessionID("cs_missing")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)

	// Any other failure maps to ErrPersistence
	mockRepo.On("GetBySessionID", "cs_err").
		Return(nil, fmt.Errorf("connection refused")).Once()
	order, err = service.GetOrderBySessionID("cs_err")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrPersistence)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetRecentOrders(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	expected := []models.Order{
		{ID: "order-2", StripeSessionID: "cs_2"},
		{ID: "order-1", StripeSessionID: "cs_1"},
	}

	// The listing is capped at 50.
	mockRepo.On("GetAll", 50).Return(expected, nil).Once()
	orders, err := service.GetRecentOrders()
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetStats(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	expected := &models.OrderStats{
		TotalOrders:      3,
		SuccessfulOrders: 1,
		FailedOrders:     1,
		PendingOrders:    1,
		TotalRevenue:     159.98,
	}

	mockRepo.On("Stats").Return(expected, nil).Once()
	stats, err := service.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, expected, stats)
	mockRepo.AssertExpectations(t)
}
