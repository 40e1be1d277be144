package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PaymentStatus is the lifecycle state of an order's payment.
// Orders start pending and move to exactly one terminal state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Terminal reports whether s is a terminal payment state.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// OrderItem is a line item snapshotted at checkout time. Prices are
// copied from the submitted catalog data when the order is created and
// never re-read from the live catalog afterwards.
type OrderItem struct {
	ProductID   int     `json:"product_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"` // Unit price at the time of order
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// OrderItems is stored as a single JSON column.
type OrderItems []OrderItem

// Value implements driver.Valuer so GORM can persist the item snapshot.
func (items OrderItems) Value() (driver.Value, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON column back.
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for order items", value)
	}
	return json.Unmarshal(data, items)
}

// Order represents a single purchase attempt. The Stripe checkout
// session id is the join key between local state and processor events:
// an order exists if and only if a checkout session was created for it.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items           OrderItems    `json:"items" gorm:"type:text"`
	TotalAmount     float64       `json:"total_amount"`
	CustomerEmail   string        `json:"customer_email" gorm:"type:varchar(255)"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:pending"`
	TransactionID   string        `json:"transaction_id,omitempty" gorm:"type:varchar(255)"`
	StripeSessionID string        `json:"stripe_session_id" gorm:"uniqueIndex;type:varchar(255)"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderStats aggregates order counts and revenue for the admin view.
type OrderStats struct {
	TotalOrders      int64   `json:"totalOrders"`
	SuccessfulOrders int64   `json:"successfulOrders"`
	FailedOrders     int64   `json:"failedOrders"`
	PendingOrders    int64   `json:"pendingOrders"`
	TotalRevenue     float64 `json:"totalRevenue"`
}
