package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// Open opens a database connection without pinging.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// MustOpen returns an open database connection or exits the process.
// Readiness is checked separately via WaitForReady so that a slow
// database start does not kill the service immediately.
func MustOpen(dsn string) *sql.DB {
	if dsn == "" {
		log.Fatal("database DSN not set")
	}

	conn, err := Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return conn
}

// WaitForReady pings the database up to attempts times with a fixed delay
// between tries. It returns the last ping error after exhausting attempts.
// Services call this at startup before accepting traffic.
func WaitForReady(ctx context.Context, conn *sql.DB, attempts int, delay time.Duration, logger *log.Logger) error {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = conn.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			logger.Println("connected to database")
			return nil
		}

		logger.Printf("waiting for database... attempt %d/%d", i, attempts)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", attempts, lastErr)
}
