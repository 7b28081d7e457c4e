package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/shop-system/internal/db"
	"github.com/andreasstove999/shop-system/internal/user"
	"github.com/andreasstove999/shop-system/internal/userapi"
)

func main() {
	port := getEnv("PORT", "3001")

	logger := log.New(os.Stdout, "[user-service] ", log.LstdFlags|log.Lshortfile)

	dsn := os.Getenv("USER_DB_DSN")
	if dsn == "" {
		logger.Fatal("USER_DB_DSN not set")
	}

	database := db.MustOpen(dsn)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.WaitForReady(ctx, database, 10, 2*time.Second, logger); err != nil {
		logger.Fatalf("database not ready: %v", err)
	}
	if err := db.RunMigrations(dsn, user.Migrations, "migrations", logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}

	repo := user.NewRepository(database)
	mux := userapi.NewRouter(repo, database)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("user-service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

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
