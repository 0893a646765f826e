package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
)

var ErrInvalidRecord = errors.New("invalid inventory record")

type Service struct {
	log   *slog.Logger
	store StockStore
}

func NewService(log *slog.Logger, store StockStore) *Service {
	return &Service{log: log, store: store}
}

// Upsert initializes or overwrites the stock record for a product.
func (s *Service) Upsert(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	if rec.ProductID == "" {
		return domain.InventoryRecord{}, fmt.Errorf("%w: productId is required", ErrInvalidRecord)
	}
	if rec.Quantity < 0 {
		return domain.InventoryRecord{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalidRecord)
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return domain.InventoryRecord{}, err
	}
	s.log.Info("stock loaded", "product_id", rec.ProductID, "quantity", rec.Quantity)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, productID string) (domain.InventoryRecord, error) {
	return s.store.Get(ctx, productID)
}

// CheckAvailability reports whether a current read of the stock covers the
// requested quantity. Advisory only: it never mutates state and a subsequent
// Reserve may still fail.
func (s *Service) CheckAvailability(ctx context.Context, productID string, quantity int) (bool, error) {
	rec, err := s.store.Get(ctx, productID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.Quantity >= quantity, nil
}

// Reserve is the authoritative check-and-decrement. Every attempt is logged
// with its outcome.
func (s *Service) Reserve(ctx context.Context, productID string, quantity int) (domain.InventoryRecord, error) {
	if productID == "" || quantity <= 0 {
		return domain.InventoryRecord{}, fmt.Errorf("%w: productId and a positive quantity are required", ErrInvalidRecord)
	}
	rec, err := s.store.Reserve(ctx, productID, quantity)
	switch {
	case err == nil:
		s.log.Info("reservation applied", "product_id", productID, "quantity", quantity, "remaining", rec.Quantity)
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrProductNotFound):
		s.log.Warn("reservation rejected", "product_id", productID, "quantity", quantity, "reason", err.Error())
	default:
		s.log.Error("reservation failed", "product_id", productID, "quantity", quantity, "err", err)
	}
	return rec, err
}
