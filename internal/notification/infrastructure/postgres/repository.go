package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderflow/order-fulfillment/internal/notification/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS notifications (
		id            TEXT PRIMARY KEY,
		order_id      TEXT NOT NULL,
		customer_id   TEXT NOT NULL,
		message       TEXT NOT NULL,
		status        TEXT NOT NULL,
		created_at_ms BIGINT NOT NULL
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, n domain.NotificationRecord) (domain.NotificationRecord, error) {
	n.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx, `INSERT INTO notifications (id, order_id, customer_id, message, status, created_at_ms)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.OrderID, n.CustomerID, n.Message, string(n.Status), n.Timestamp)
	if err != nil {
		return domain.NotificationRecord{}, err
	}
	return n, nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (domain.NotificationRecord, error) {
	var n domain.NotificationRecord
	err := r.pool.QueryRow(ctx, `SELECT id, order_id, customer_id, message, status, created_at_ms
		FROM notifications WHERE order_id=$1 ORDER BY created_at_ms LIMIT 1`, orderID).
		Scan(&n.ID, &n.OrderID, &n.CustomerID, &n.Message, &n.Status, &n.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotificationRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.NotificationRecord{}, err
	}
	return n, nil
}
