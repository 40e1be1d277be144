package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for catalog data access.
// The catalog is seeded once at startup and read-only afterwards.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
}
