package userapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/andreasstove999/shop-system/internal/httpx"
	"github.com/andreasstove999/shop-system/internal/user"
)

func NewRouter(repo user.Repository, db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler(db))

	h := NewUserHandler(repo)

	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("POST /users", h.CreateUser)
	mux.HandleFunc("GET /users/{id}", h.GetUser)

	return mux
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "user service is unhealthy")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "user-service",
		})
	}
}
