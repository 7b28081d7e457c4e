package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/andreasstove999/shop-system/internal/httpx"
)

func Recover(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Printf("panic: %v", rec)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(httpx.ErrorResponse{
						Error: "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
