package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orderflow/order-fulfillment/internal/notification/domain"
)

// Repository is an in-memory notification store for local runs and tests.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]domain.NotificationRecord
	byOrder map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]domain.NotificationRecord),
		byOrder: make(map[string]string),
	}
}

func (r *Repository) Create(_ context.Context, n domain.NotificationRecord) (domain.NotificationRecord, error) {
	n.ID = uuid.NewString()
	r.mu.Lock()
	r.byID[n.ID] = n
	if _, ok := r.byOrder[n.OrderID]; !ok {
		r.byOrder[n.OrderID] = n.ID
	}
	r.mu.Unlock()
	return n, nil
}

func (r *Repository) GetByOrderID(_ context.Context, orderID string) (domain.NotificationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return domain.NotificationRecord{}, domain.ErrNotFound
	}
	return r.byID[id], nil
}
