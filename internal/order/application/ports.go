package application

import (
	"context"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
)

// OrderRepository persists confirmed orders. Create assigns the order ID.
type OrderRepository interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
}

// InventoryClient talks to the inventory service. CheckAvailability is
// advisory; Reserve is the authoritative, state-changing call. Both must
// surface ErrProductNotFound / ErrInsufficientStock for the corresponding
// rejections so the orchestrator can fail closed with the right kind.
type InventoryClient interface {
	CheckAvailability(ctx context.Context, productID string, quantity int) (bool, error)
	Reserve(ctx context.Context, productID string, quantity int) error
}

// NotificationClient delivers the order confirmation. One attempt, best effort.
type NotificationClient interface {
	Notify(ctx context.Context, o domain.Order) error
}

// EventPublisher fans the confirmation out to downstream consumers.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, o domain.Order) error
}
