package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/ec-shop/internal/domain/cart"
)

// PostgresCartStore implements cart.Store. The cart is stored as a
// carts row plus position-ordered cart_items rows.
type PostgresCartStore struct {
	db *sql.DB
}

func NewPostgresCartStore(db *sql.DB) *PostgresCartStore {
	return &PostgresCartStore{db: db}
}

func (s *PostgresCartStore) FindByOwner(ctx context.Context, ownerEmail string) (*cart.Cart, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM carts WHERE owner_email = $1)`, ownerEmail,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	if !exists {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, product_name, product_category, product_cost, product_rating, product_image, quantity
		 FROM cart_items WHERE owner_email = $1 ORDER BY position`, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	c := &cart.Cart{OwnerEmail: ownerEmail, Items: []cart.CartItem{}}
	for rows.Next() {
		var item cart.CartItem
		if err := rows.Scan(
			&item.Product.ID, &item.Product.Name, &item.Product.Category,
			&item.Product.Cost, &item.Product.Rating, &item.Product.ImageLink,
			&item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, item)
	}
	return c, rows.Err()
}

func (s *PostgresCartStore) Create(ctx context.Context, ownerEmail string) (*cart.Cart, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO carts (owner_email) VALUES ($1) ON CONFLICT (owner_email) DO NOTHING`,
		ownerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return &cart.Cart{OwnerEmail: ownerEmail, Items: []cart.CartItem{}}, nil
}

// Save rewrites the cart's item rows to match c.Items.
func (s *PostgresCartStore) Save(ctx context.Context, c *cart.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE owner_email = $1`, c.OwnerEmail); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	for i, item := range c.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items
			 (owner_email, product_id, product_name, product_category, product_cost, product_rating, product_image, quantity, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.OwnerEmail, item.Product.ID, item.Product.Name, item.Product.Category,
			item.Product.Cost, item.Product.Rating, item.Product.ImageLink,
			item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}

	return tx.Commit()
}

// CompleteCheckout debits the wallet and clears the cart in one
// transaction. The debit is conditional on the current balance, so a
// concurrent checkout that already took the money matches no row and
// the whole operation rolls back with ErrInsufficientFunds.
func (s *PostgresCartStore) CompleteCheckout(ctx context.Context, ownerEmail string, total decimal.Decimal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET wallet_money = wallet_money - $1
		 WHERE email = $2 AND wallet_money >= $1`,
		total, ownerEmail,
	)
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}
	if rows == 0 {
		return cart.ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE owner_email = $1`, ownerEmail); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	return tx.Commit()
}
