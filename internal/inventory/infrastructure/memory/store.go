package memory

import (
	"context"
	"sync"

	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
)

// Store keeps stock counts in memory with one lock per product, so
// reservations on distinct products never contend with each other.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	quantity int
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) Get(_ context.Context, productID string) (domain.InventoryRecord, error) {
	s.mu.RLock()
	e, ok := s.entries[productID]
	s.mu.RUnlock()
	if !ok {
		return domain.InventoryRecord{}, domain.ErrProductNotFound
	}
	e.mu.Lock()
	q := e.quantity
	e.mu.Unlock()
	return domain.InventoryRecord{ProductID: productID, Quantity: q}, nil
}

func (s *Store) Upsert(_ context.Context, rec domain.InventoryRecord) error {
	s.mu.Lock()
	e, ok := s.entries[rec.ProductID]
	if !ok {
		s.entries[rec.ProductID] = &entry{quantity: rec.Quantity}
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	e.mu.Lock()
	e.quantity = rec.Quantity
	e.mu.Unlock()
	return nil
}

// Reserve checks and decrements while holding the product's lock. Two
// concurrent reservations for the same product serialize here, so both can
// never pass the availability check against the same stock.
func (s *Store) Reserve(_ context.Context, productID string, quantity int) (domain.InventoryRecord, error) {
	s.mu.RLock()
	e, ok := s.entries[productID]
	s.mu.RUnlock()
	if !ok {
		return domain.InventoryRecord{}, domain.ErrProductNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.quantity < quantity {
		return domain.InventoryRecord{}, domain.ErrInsufficientStock
	}
	e.quantity -= quantity
	return domain.InventoryRecord{ProductID: productID, Quantity: e.quantity}, nil
}
