package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/orderflow/order-fulfillment/internal/notification/domain"
)

var ErrInvalidNotification = errors.New("invalid notification request")

type SendRequest struct {
	OrderID    string
	CustomerID string
	ProductID  string
	Quantity   int
}

type Service struct {
	log    *slog.Logger
	repo   NotificationRepository
	dedupe DedupeStore
}

// NewService builds the sink. dedupe may be nil, in which case every request
// produces a fresh record.
func NewService(log *slog.Logger, repo NotificationRepository, dedupe DedupeStore) *Service {
	return &Service{log: log, repo: repo, dedupe: dedupe}
}

// Send records one confirmation for the order. A repeated orderId returns the
// previously recorded notification instead of sending again.
func (s *Service) Send(ctx context.Context, req SendRequest) (domain.NotificationRecord, error) {
	if req.OrderID == "" || req.CustomerID == "" {
		return domain.NotificationRecord{}, fmt.Errorf("%w: orderId and customerId are required", ErrInvalidNotification)
	}

	if s.dedupe != nil {
		claimed, err := s.dedupe.Claim(ctx, "notify:order:"+req.OrderID)
		if err != nil {
			s.log.Warn("dedupe check failed, sending anyway", "order_id", req.OrderID, "err", err)
		} else if !claimed {
			prev, err := s.repo.GetByOrderID(ctx, req.OrderID)
			if err == nil {
				s.log.Info("duplicate confirmation skipped", "order_id", req.OrderID)
				return prev, nil
			}
			// The earlier claim left no record behind; send after all.
		}
	}

	created, err := s.repo.Create(ctx, domain.NewConfirmation(req.OrderID, req.CustomerID, req.ProductID, req.Quantity))
	if err != nil {
		s.log.Error("notification persistence failed", "order_id", req.OrderID, "err", err)
		return domain.NotificationRecord{}, err
	}
	s.log.Info("notification sent", "order_id", req.OrderID, "customer_id", req.CustomerID, "message", created.Message)
	return created, nil
}
