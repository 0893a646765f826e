package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS inventory (
		product_id TEXT PRIMARY KEY,
		quantity   INT NOT NULL CHECK (quantity >= 0)
	)`)
	return err
}

func (r *Repository) Get(ctx context.Context, productID string) (domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	err := r.pool.QueryRow(ctx,
		`SELECT product_id, quantity FROM inventory WHERE product_id=$1`, productID).
		Scan(&rec.ProductID, &rec.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.InventoryRecord{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	return rec, nil
}

func (r *Repository) Upsert(ctx context.Context, rec domain.InventoryRecord) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO inventory (product_id, quantity) VALUES ($1,$2)
		ON CONFLICT (product_id) DO UPDATE SET quantity=$2`,
		rec.ProductID, rec.Quantity)
	return err
}

// Reserve runs the check and the decrement as a single conditional UPDATE, so
// concurrent reservations for the same product serialize on the row and the
// quantity can never be driven below zero.
func (r *Repository) Reserve(ctx context.Context, productID string, quantity int) (domain.InventoryRecord, error) {
	var remaining int
	err := r.pool.QueryRow(ctx, `UPDATE inventory
		SET quantity = quantity - $2
		WHERE product_id = $1 AND quantity >= $2
		RETURNING quantity`, productID, quantity).
		Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row updated: the product is missing or stock is short.
		if _, getErr := r.Get(ctx, productID); getErr != nil {
			return domain.InventoryRecord{}, getErr
		}
		return domain.InventoryRecord{}, domain.ErrInsufficientStock
	}
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	return domain.InventoryRecord{ProductID: productID, Quantity: remaining}, nil
}
