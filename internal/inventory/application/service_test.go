package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
	"github.com/orderflow/order-fulfillment/internal/inventory/infrastructure/memory"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(slog.New(slog.DiscardHandler), memory.NewStore())
}

func TestUpsert_Validates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, domain.InventoryRecord{ProductID: "", Quantity: 5})
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.Upsert(ctx, domain.InventoryRecord{ProductID: "sku-1", Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidRecord)

	rec, err := svc.Upsert(ctx, domain.InventoryRecord{ProductID: "sku-1", Quantity: 0})
	require.NoError(t, err)
	require.Equal(t, 0, rec.Quantity)
}

func TestCheckAvailability_IsAdvisoryAndReadOnly(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, domain.InventoryRecord{ProductID: "sku-1", Quantity: 3})
	require.NoError(t, err)

	ok, err := svc.CheckAvailability(ctx, "sku-1", 3)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.CheckAvailability(ctx, "sku-1", 4)
	require.NoError(t, err)
	require.False(t, ok)

	// Unknown products read as unavailable rather than erroring.
	ok, err = svc.CheckAvailability(ctx, "sku-x", 1)
	require.NoError(t, err)
	require.False(t, ok)

	// The check must not have mutated anything.
	rec, err := svc.Get(ctx, "sku-1")
	require.NoError(t, err)
	require.Equal(t, 3, rec.Quantity)
}

func TestReserve_ValidatesInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "", 1)
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.Reserve(ctx, "sku-1", 0)
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.Reserve(ctx, "sku-1", -2)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestReserve_PassesThroughStoreOutcomes(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, domain.InventoryRecord{ProductID: "sku-1", Quantity: 10})
	require.NoError(t, err)

	rec, err := svc.Reserve(ctx, "sku-1", 3)
	require.NoError(t, err)
	require.Equal(t, 7, rec.Quantity)

	_, err = svc.Reserve(ctx, "sku-1", 8)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.Reserve(ctx, "sku-x", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
