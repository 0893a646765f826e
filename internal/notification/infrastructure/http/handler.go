package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow/order-fulfillment/internal/notification/application"
	"github.com/orderflow/order-fulfillment/pkg/tracing"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("notification-http"),
	}
}

type sendNotificationReq struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/notifications/order", h.sendOrderNotification)

	return r
}

func (h *Handler) sendOrderNotification(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "SendOrderNotification")
	defer span.End()

	var req sendNotificationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := h.service.Send(ctx, application.SendRequest{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	switch {
	case errors.Is(err, application.ErrInvalidNotification):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
