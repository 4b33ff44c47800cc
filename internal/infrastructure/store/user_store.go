package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-shop/internal/domain/user"
)

// PostgresUserStore implements user.Store.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findOne(ctx,
		`SELECT id, name, email, password_hash, address, wallet_money, created_at
		 FROM users WHERE email = $1`, email)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	return s.findOne(ctx,
		`SELECT id, name, email, password_hash, address, wallet_money, created_at
		 FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) findOne(ctx context.Context, query, arg string) (*user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Address, &u.WalletMoney, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, address, wallet_money, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Address, u.WalletMoney, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) Save(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, address = $2, wallet_money = $3 WHERE email = $4`,
		u.Name, u.Address, u.WalletMoney, u.Email,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
