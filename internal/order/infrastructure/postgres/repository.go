package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		customer_id   TEXT NOT NULL,
		product_id    TEXT NOT NULL,
		quantity      INT NOT NULL,
		status        TEXT NOT NULL,
		created_at_ms BIGINT NOT NULL
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	o.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx, `INSERT INTO orders (id, customer_id, product_id, quantity, status, created_at_ms)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.CustomerID, o.ProductID, o.Quantity, string(o.Status), o.Timestamp)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `SELECT id, customer_id, product_id, quantity, status, created_at_ms
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.Status, &o.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
