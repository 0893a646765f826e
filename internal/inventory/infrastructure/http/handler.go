package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow/order-fulfillment/internal/inventory/application"
	"github.com/orderflow/order-fulfillment/internal/inventory/domain"
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
		tracer:  otel.Tracer("inventory-http"),
	}
}

type stockReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/inventory", h.upsertStock)
	r.Get("/inventory/{productId}", h.getStock)
	r.Post("/inventory/reserve", h.reserveStock)

	return r
}

func (h *Handler) upsertStock(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "UpsertStock")
	defer span.End()

	var req stockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := h.service.Upsert(ctx, domain.InventoryRecord{ProductID: req.ProductID, Quantity: req.Quantity})
	switch {
	case errors.Is(err, application.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "GetStock")
	defer span.End()

	rec, err := h.service.Get(ctx, chi.URLParam(r, "productId"))
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler) reserveStock(w http.ResponseWriter, r *http.Request) {
	ctx := tracing.ExtractHTTPHeaders(r.Context(), r.Header)
	ctx, span := h.tracer.Start(ctx, "ReserveStock")
	defer span.End()

	var req stockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := h.service.Reserve(ctx, req.ProductID, req.Quantity)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, "Product not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, application.ErrInvalidRecord):
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
