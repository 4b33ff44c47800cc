package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-shop/internal/domain/product"
)

// PostgresProductStore implements product.Catalog.
type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

func (s *PostgresProductStore) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, cost, rating, image FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.ImageLink)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *PostgresProductStore) List(ctx context.Context) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, cost, rating, image FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.ImageLink); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Seed upserts catalog entries. The catalog is read-only at runtime;
// this exists for bootstrap tooling.
func (s *PostgresProductStore) Seed(ctx context.Context, products []product.Product) error {
	for _, p := range products {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO products (id, name, category, cost, rating, image)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, category = EXCLUDED.category,
			     cost = EXCLUDED.cost, rating = EXCLUDED.rating, image = EXCLUDED.image`,
			p.ID, p.Name, p.Category, p.Cost, p.Rating, p.ImageLink,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}
