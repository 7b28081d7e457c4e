package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/andreasstove999/shop-system/internal/gateway/config"
	"github.com/andreasstove999/shop-system/internal/gateway/middleware"
	"github.com/andreasstove999/shop-system/internal/httpx"
)

type Deps struct {
	Logger *log.Logger
	Cfg    config.Config

	Users    *Proxy
	Products *Proxy
	Orders   *Proxy
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", gatewayHealth)
	mux.HandleFunc("GET /health/upstreams", upstreamsHealth(d))

	// Proxy routes to the services, with the /api prefix stripped
	mux.Handle("/api/users", d.Users.Rewrite("/api/users", "/users"))
	mux.Handle("/api/users/", d.Users.Rewrite("/api/users", "/users"))
	mux.Handle("/api/products", d.Products.Rewrite("/api/products", "/products"))
	mux.Handle("/api/products/", d.Products.Rewrite("/api/products", "/products"))
	mux.Handle("/api/orders", d.Orders.Rewrite("/api/orders", "/orders"))
	mux.Handle("/api/orders/", d.Orders.Rewrite("/api/orders", "/orders"))

	// Middlewares (outer -> inner)
	var h http.Handler = mux
	h = middleware.Recover(d.Logger)(h)
	h = middleware.CORS(d.Cfg.CORSAllowOrigins)(h)
	h = middleware.CorrelationID(h)
	h = middleware.AuthJWT(h) // still placeholder
	h = middleware.Logging(d.Logger)(h)

	return h
}

func gatewayHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "Gateway is running"})
}

func upstreamsHealth(d Deps) http.HandlerFunc {
	probes := map[string]*Proxy{
		"user-service":    d.Users,
		"product-service": d.Products,
		"order-service":   d.Orders,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		out := make(map[string]string, len(probes))
		for name, p := range probes {
			if err := p.Health(ctx); err != nil {
				out[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			out[name] = "ok"
		}

		httpx.WriteJSON(w, status, out)
	}
}
