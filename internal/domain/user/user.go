package user

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAddress is the sentinel stored on users who have not
// configured a real shipping address yet.
const DefaultAddress = "ADDRESS_NOT_SET"

// DefaultWalletMoney is the balance granted to every new account.
var DefaultWalletMoney = decimal.NewFromInt(500)

type User struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Address      string          `json:"address"`
	WalletMoney  decimal.Decimal `json:"walletMoney"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// HasSetNonDefaultAddress reports whether the user has replaced the
// address sentinel with a real shipping address.
func (u *User) HasSetNonDefaultAddress() bool {
	return u.Address != DefaultAddress
}

// Store is the persistence contract for users. Find methods return
// (nil, nil) when no user matches.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
}
