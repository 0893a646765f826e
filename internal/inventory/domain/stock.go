package domain

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InventoryRecord is the authoritative stock count for one product. Quantity
// never goes negative: mutation happens only through a check-and-decrement
// reservation.
type InventoryRecord struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
