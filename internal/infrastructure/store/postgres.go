// Package store implements the persistence contracts against
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a connection pool and verifies it.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			address       TEXT NOT NULL,
			wallet_money  NUMERIC(12,2) NOT NULL CHECK (wallet_money >= 0),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			category TEXT NOT NULL,
			cost     NUMERIC(12,2) NOT NULL CHECK (cost >= 0),
			rating   INT NOT NULL DEFAULT 0,
			image    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			owner_email TEXT PRIMARY KEY,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			owner_email      TEXT NOT NULL REFERENCES carts(owner_email) ON DELETE CASCADE,
			product_id       TEXT NOT NULL,
			product_name     TEXT NOT NULL,
			product_category TEXT NOT NULL,
			product_cost     NUMERIC(12,2) NOT NULL,
			product_rating   INT NOT NULL DEFAULT 0,
			product_image    TEXT NOT NULL DEFAULT '',
			quantity         INT NOT NULL,
			position         INT NOT NULL,
			PRIMARY KEY (owner_email, product_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
