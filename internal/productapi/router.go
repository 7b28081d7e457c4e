package productapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/andreasstove999/shop-system/internal/httpx"
	"github.com/andreasstove999/shop-system/internal/product"
)

func NewRouter(repo product.Repository, db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler(db))

	h := NewProductHandler(repo)

	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("POST /products", h.CreateProduct)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)

	return mux
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "product service is unhealthy")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "product-service",
		})
	}
}
