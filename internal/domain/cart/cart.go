// Package cart implements the cart and checkout core: cart membership,
// quantity mutation, and the balance-guarded checkout.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/example/ec-shop/internal/domain/product"
)

// ErrInsufficientFunds is returned by Store.CompleteCheckout when the
// conditional wallet debit matches no row, either because the balance
// is too low or because a concurrent checkout already took the money.
var ErrInsufficientFunds = errors.New("insufficient funds")

// CartItem is one line item. Product is a value copy: the cost is
// frozen at add time and never re-read from the catalog.
type CartItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the per-user collection of line items, keyed by the owner's
// email. Item order is insertion order.
type Cart struct {
	OwnerEmail string     `json:"email"`
	Items      []CartItem `json:"cartItems"`
}

// IndexOf returns the position of the line item for productID, or -1.
func (c *Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Total sums cost*quantity over all line items, using the costs
// snapshotted at add time.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Product.Cost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Store is the persistence contract for carts. FindByOwner returns
// (nil, nil) when the user has no cart.
type Store interface {
	FindByOwner(ctx context.Context, ownerEmail string) (*Cart, error)
	Create(ctx context.Context, ownerEmail string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error

	// CompleteCheckout debits total from the owner's wallet and clears
	// the cart in a single atomic step. The debit is conditional on the
	// stored balance still covering total; a stale read by a concurrent
	// checkout fails with ErrInsufficientFunds and leaves both the
	// wallet and the cart untouched.
	CompleteCheckout(ctx context.Context, ownerEmail string, total decimal.Decimal) error
}
