package orderapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/andreasstove999/shop-system/internal/httpx"
)

func NewRouter(svc Service, db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler(db))

	h := NewOrderHandler(svc)

	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("GET /orders", h.ListOrders)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)

	return mux
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "order service is unhealthy")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "order-service",
		})
	}
}
