package application

import (
	"context"

	"github.com/orderflow/order-fulfillment/internal/notification/domain"
)

// NotificationRepository persists confirmation records. Create assigns the ID.
type NotificationRepository interface {
	Create(ctx context.Context, n domain.NotificationRecord) (domain.NotificationRecord, error)
	GetByOrderID(ctx context.Context, orderID string) (domain.NotificationRecord, error)
}

// DedupeStore enforces the one-confirmation-per-order contract across
// redelivered requests.
type DedupeStore interface {
	Claim(ctx context.Context, key string) (bool, error)
}
