package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow/order-fulfillment/internal/order/application"
	"github.com/orderflow/order-fulfillment/internal/order/domain"
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
		tracer:  otel.Tracer("order-http"),
	}
}

type createOrderReq struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)

	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "CreateOrder")
	defer span.End()

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	order, err := h.service.CreateOrder(ctx, application.CreateOrderRequest{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	switch {
	case errors.Is(err, application.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, application.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, "Product not found")
	case errors.Is(err, application.ErrReservationUnavailable):
		writeError(w, http.StatusInternalServerError, "failed to reserve inventory")
	case errors.Is(err, application.ErrOrderPersist):
		writeError(w, http.StatusInternalServerError, "order persistence failed")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, order)
	}
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "GetOrder")
	defer span.End()

	order, err := h.service.GetOrder(ctx, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, order)
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
