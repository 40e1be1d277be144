package models

// Product represents a catalog entry. The catalog is read-only,
// externally supplied configuration; orders snapshot item data at
// checkout time rather than referencing these rows.
type Product struct {
	ID          int     `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}
