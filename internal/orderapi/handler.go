package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/andreasstove999/shop-system/internal/httpx"
	"github.com/andreasstove999/shop-system/internal/order"
)

// Service is the orchestration surface the handlers call into.
type Service interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
	Get(ctx context.Context, id int64) (*order.Order, error)
	List(ctx context.Context) ([]order.Order, error)
}

type OrderHandler struct {
	svc Service
}

func NewOrderHandler(svc Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req order.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "invalid request body",
			Kind:  string(order.KindInvalidInput),
		})
		return
	}

	// Covers both collaborator lookups plus the insert
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.svc.Create(ctx, req)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "invalid order id",
			Kind:  string(order.KindInvalidInput),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.svc.Get(ctx, id)
	if err != nil {
		httpx.WriteJSON(w, http.StatusInternalServerError, httpx.ErrorResponse{
			Error: "failed to load order",
			Kind:  string(order.KindStorage),
		})
		return
	}
	if o == nil {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorResponse{
			Error:  "order not found",
			Kind:   string(order.KindNotFound),
			Entity: order.EntityOrder,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.svc.List(ctx)
	if err != nil {
		httpx.WriteJSON(w, http.StatusInternalServerError, httpx.ErrorResponse{
			Error: "failed to load orders",
			Kind:  string(order.KindStorage),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orders)
}

func writeOrderError(w http.ResponseWriter, err error) {
	if oe, ok := order.AsError(err); ok {
		httpx.WriteJSON(w, statusFor(oe.Kind), httpx.ErrorResponse{
			Error:  oe.Message,
			Kind:   string(oe.Kind),
			Entity: oe.Entity,
		})
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

func statusFor(k order.Kind) int {
	switch k {
	case order.KindInvalidInput:
		return http.StatusBadRequest
	case order.KindNotFound:
		return http.StatusNotFound
	case order.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
