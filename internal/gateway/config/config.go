package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	UpstreamTimeout time.Duration

	// Upstream base URLs (inside docker network recommended)
	UserURL    string
	ProductURL string
	OrderURL   string

	// CORS
	CORSAllowOrigins []string
}

func Load() Config {
	port := getenv("PORT", "3000")

	timeout := parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second)

	// Defaults match docker-compose service names and internal ports.
	// Override with env vars to run the gateway against localhost.
	return Config{
		Port:            port,
		UpstreamTimeout: timeout,

		UserURL:    getenv("USER_SERVICE_URL", "http://user-service:3001"),
		ProductURL: getenv("PRODUCT_SERVICE_URL", "http://product-service:3002"),
		OrderURL:   getenv("ORDER_SERVICE_URL", "http://order-service:3003"),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
