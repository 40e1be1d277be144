package repositories

import (
	"errors"

	"storefront/internal/models"
)

// ErrOrderNotFound is returned by lookups for a session id with no
// matching order.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access.
//
// MarkSucceeded and MarkFailed perform the terminal transition as a
// single conditional update keyed on the Stripe session id: they only
// touch rows still in the pending state, so concurrent webhook
// redeliveries for the same session are serialized by the store and a
// terminal state can never regress or flip. The returned bool reports
// whether a row was actually transitioned; false means the order is
// either missing or already terminal, which callers distinguish with
// GetBySessionID.
type OrderRepository interface {
	Create(order *models.Order) error
	GetBySessionID(sessionID string) (*models.Order, error)
	GetAll(limit int) ([]models.Order, error)
	MarkSucceeded(sessionID, transactionID string) (bool, error)
	MarkFailed(sessionID string) (bool, error)
	Stats() (*models.OrderStats, error)
}
