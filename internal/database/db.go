// Package database provides database connection management for the EmployArmor application.
// It supports PostgreSQL via pgx driver with connection pooling and proper lifecycle management.
package database

import (
	"context"
	"fmt"
	"log"

	"github.com/dbartell/employarmor-sub001/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBInterface defines the interface for database operations.
// This interface allows for easy mocking in tests and decouples code from concrete implementation.
//
// All methods mirror pgxpool.Pool methods to maintain compatibility.
type DBInterface interface {
	// Query executes a query that returns rows
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// QueryRow executes a query that returns at most one row
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row

	// Exec executes a query without returning any rows
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)

	// Ping verifies a connection to the database is still alive
	Ping(ctx context.Context) error

	// Close closes all connections in the pool
	Close()
}

// DB is the global database connection pool.
// For production use, it holds a *pgxpool.Pool.
// For testing, it can be replaced with a mock implementation.
var DB DBInterface

// Connect establishes a connection to the database using the provided configuration.
// It creates a connection pool and verifies connectivity.
//
// Side Effects:
//   - Sets the global DB variable to the created connection pool
func Connect(cfg config.DatabaseConfig) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = pool
	log.Println("Database connected successfully")
	return nil
}

// Close closes the database connection pool gracefully.
// It's safe to call Close multiple times or when DB is nil.
//
// This should typically be called with defer in main:
//
//	defer database.Close()
func Close() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed")
		DB = nil
	}
}

// MustConnect connects to the database or exits on failure.
// Useful for application startup where database is required.
func MustConnect(cfg config.DatabaseConfig) {
	if err := Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
}

// IsConnected returns true if the database connection is established and healthy.
func IsConnected() bool {
	if DB == nil {
		return false
	}

	ctx := context.Background()
	return DB.Ping(ctx) == nil
}
