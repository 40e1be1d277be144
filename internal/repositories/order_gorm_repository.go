package repositories

import (
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists a new order. The unique index on stripe_session_id
// guarantees exactly one order per checkout session.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetBySessionID retrieves a single order by its Stripe session ID.
func (r *GORMOrderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "stripe_session_id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session ID %s: %w", sessionID, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by session ID %s: %w", sessionID, err)
	}
	return &order, nil
}

// GetAll retrieves the most recent orders, newest first.
func (r *GORMOrderRepository) GetAll(limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// MarkSucceeded transitions a pending order to succeeded, recording the
// payment reference. The pending predicate makes the update a no-op for
// orders already in a terminal state.
func (r *GORMOrderRepository) MarkSucceeded(sessionID, transactionID string) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("stripe_session_id = ? AND payment_status = ?", sessionID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusSucceeded,
			"transaction_id": transactionID,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order succeeded for session %s: %w", sessionID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// MarkFailed transitions a pending order to failed.
func (r *GORMOrderRepository) MarkFailed(sessionID string) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("stripe_session_id = ? AND payment_status = ?", sessionID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusFailed,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order failed for session %s: %w", sessionID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Stats aggregates order counts per status and total revenue over
// succeeded orders.
func (r *GORMOrderRepository) Stats() (*models.OrderStats, error) {
	var stats models.OrderStats

	if err := r.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	counts := []struct {
		status models.PaymentStatus
		dest   *int64
	}{
		{models.PaymentStatusSucceeded, &stats.SuccessfulOrders},
		{models.PaymentStatusFailed, &stats.FailedOrders},
		{models.PaymentStatusPending, &stats.PendingOrders},
	}
	for _, c := range counts {
		if err := r.db.Model(&models.Order{}).
			Where("payment_status = ?", c.status).
			Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", c.status, err)
		}
	}

	var revenue struct {
		Total float64
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("payment_status = ?", models.PaymentStatusSucceeded).
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	stats.TotalRevenue = revenue.Total

	return &stats, nil
}
