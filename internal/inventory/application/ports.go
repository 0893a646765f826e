package application

import (
	"context"

	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
)

// StockStore is the stock ledger. Reserve must be atomic: the availability
// check and the decrement happen under the same per-product serialization, so
// two concurrent reservations can never both succeed on stock that covers
// only one of them.
type StockStore interface {
	Get(ctx context.Context, productID string) (domain.InventoryRecord, error)
	Upsert(ctx context.Context, rec domain.InventoryRecord) error
	Reserve(ctx context.Context, productID string, quantity int) (domain.InventoryRecord, error)
}
