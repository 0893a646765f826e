package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
)

// Repository is an in-memory order store for local runs and tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

func (r *Repository) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	o.ID = uuid.NewString()
	r.mu.Lock()
	r.orders[o.ID] = o
	r.mu.Unlock()
	return o, nil
}

func (r *Repository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	o, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}
