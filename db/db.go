// Package db owns the optional Postgres backing for the durable cache
// (cache_entries) and the stock-number lookup index (vehicle_index). The
// server is fully functional without it; a failed init means memory-only
// caching and snapshot-scan lookups, never a startup failure.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the shared connection pool. Nil when running memory-only.
var DB *sql.DB

// connString assembles the pgx connection string. DATABASE_URL wins when
// set; otherwise the discrete DB_* variables are combined, with local-dev
// defaults for port and sslmode.
func connString() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("no durable storage configured: set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode), nil
}

// InitDB opens and pings the pool. Callers that can run degraded should use
// InitOptional instead.
func InitDB() error {
	connStr, err := connString()
	if err != nil {
		return err
	}

	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := DB.PingContext(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	log.Printf("✅ Database: connected, durable cache and vehicle index enabled")
	return nil
}

// InitOptional tries InitDB and reports whether durable storage is up.
// A failure is logged and absorbed; the caller wires the memory-only
// fallbacks when this returns false.
func InitOptional() bool {
	if err := InitDB(); err != nil {
		log.Printf("⚠️ Database: unavailable, running memory-only: %v", err)
		DB = nil
		return false
	}
	return true
}

// CloseDB closes the pool if one was opened.
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
