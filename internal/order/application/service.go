package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
	"github.com/orderflow/order-fulfillment/pkg/dispatch"
)

var (
	// ErrInvalidRequest: caller error, rejected before any side effect.
	ErrInvalidRequest = errors.New("invalid order request")
	// ErrInsufficientStock / ErrProductNotFound: resource conflicts, no side
	// effects, safe to retry with adjusted input.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	// ErrReservationUnavailable: the inventory dependency failed before any
	// reservation committed; the whole order can be retried from scratch.
	ErrReservationUnavailable = errors.New("inventory service unavailable")
	// ErrOrderPersist: stock was reserved but the order could not be recorded.
	// The one consistency gap in this design; surfaced distinctly so operators
	// can reconcile the ledger.
	ErrOrderPersist = errors.New("order persistence failed")
)

type CreateOrderRequest struct {
	CustomerID string
	ProductID  string
	Quantity   int
}

func (r CreateOrderRequest) validate() error {
	switch {
	case r.CustomerID == "":
		return fmt.Errorf("%w: customerId is required", ErrInvalidRequest)
	case r.ProductID == "":
		return fmt.Errorf("%w: productId is required", ErrInvalidRequest)
	case r.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
	}
	return nil
}

// Service orchestrates the fulfillment workflow:
// validate, check stock, reserve, persist, notify. Steps 1-3 fail closed; the
// outcome is decided by steps 1-4; notification and event fan-out are handed
// off to the dispatch queue and never affect the result.
type Service struct {
	log      *slog.Logger
	repo     OrderRepository
	inv      InventoryClient
	notifier NotificationClient
	events   EventPublisher
	queue    *dispatch.Queue
}

func NewService(log *slog.Logger, repo OrderRepository, inv InventoryClient, notifier NotificationClient, events EventPublisher, queue *dispatch.Queue) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		inv:      inv,
		notifier: notifier,
		events:   events,
		queue:    queue,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if err := req.validate(); err != nil {
		return domain.Order{}, err
	}

	// Advisory pre-check to fail fast; Reserve below stays authoritative
	// because of the inherent race between check and reserve.
	available, err := s.inv.CheckAvailability(ctx, req.ProductID, req.Quantity)
	if errors.Is(err, ErrProductNotFound) {
		return domain.Order{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrReservationUnavailable, err)
	}
	if !available {
		return domain.Order{}, ErrInsufficientStock
	}

	// Do not apply a reservation once the caller has given up.
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrReservationUnavailable, err)
	}

	if err := s.inv.Reserve(ctx, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrProductNotFound):
			return domain.Order{}, err
		default:
			return domain.Order{}, fmt.Errorf("%w: %v", ErrReservationUnavailable, err)
		}
	}

	order, err := s.repo.Create(ctx, domain.NewOrder(req.CustomerID, req.ProductID, req.Quantity))
	if err != nil {
		// Stock is already decremented with no order to show for it.
		s.log.Error("order persistence failed after reservation",
			"customer_id", req.CustomerID,
			"product_id", req.ProductID,
			"quantity", req.Quantity,
			"order_state", "orphaned_reservation",
			"err", err)
		return domain.Order{}, fmt.Errorf("%w: %v", ErrOrderPersist, err)
	}
	s.log.Info("order confirmed", "order_id", order.ID, "customer_id", order.CustomerID, "product_id", order.ProductID, "quantity", order.Quantity)

	s.dispatchSideEffects(order)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// dispatchSideEffects queues the confirmation fan-out. Runs only after the
// order is persisted; any failure is logged by the queue worker and swallowed.
func (s *Service) dispatchSideEffects(order domain.Order) {
	s.queue.Enqueue(dispatch.Job{
		Name: "notify-order",
		Run: func(ctx context.Context) error {
			return s.notifier.Notify(ctx, order)
		},
	})
	if s.events != nil {
		s.queue.Enqueue(dispatch.Job{
			Name: "publish-order-confirmed",
			Run: func(ctx context.Context) error {
				return s.events.PublishOrderConfirmed(ctx, order)
			},
		})
	}
}
