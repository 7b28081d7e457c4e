package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/shop-system/internal/clients"
	"github.com/andreasstove999/shop-system/internal/db"
	"github.com/andreasstove999/shop-system/internal/events"
	"github.com/andreasstove999/shop-system/internal/order"
	"github.com/andreasstove999/shop-system/internal/orderapi"
)

func main() {
	port := getEnv("PORT", "3003")

	logger := log.New(os.Stdout, "[order-service] ", log.LstdFlags|log.Lshortfile)

	dsn := os.Getenv("ORDER_DB_DSN")
	if dsn == "" {
		logger.Fatal("ORDER_DB_DSN not set")
	}

	// DB
	database := db.MustOpen(dsn)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.WaitForReady(ctx, database, 10, 2*time.Second, logger); err != nil {
		logger.Fatalf("database not ready: %v", err)
	}
	if err := db.RunMigrations(dsn, order.Migrations, "migrations", logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}

	orderRepo := order.NewRepository(database)

	// Collaborator clients share one bounded HTTP client
	httpClient := &http.Client{Timeout: 5 * time.Second}
	users := clients.NewUserClient(clients.NewClient(
		"user-service", getEnv("USER_SERVICE_URL", "http://user-service:3001"), httpClient))
	products := clients.NewProductClient(clients.NewClient(
		"product-service", getEnv("PRODUCT_SERVICE_URL", "http://product-service:3002"), httpClient))

	// RabbitMQ is optional; the service runs without a broker
	var publisher order.EventPublisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		conn, err := events.DialRabbit(url)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	svc := order.NewService(orderRepo, users, products, publisher, logger)

	// HTTP
	mux := orderapi.NewRouter(svc, database)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Printf("order-service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
