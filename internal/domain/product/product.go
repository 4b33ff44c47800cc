// Package product holds the read-only catalog model. Products are
// referenced by carts but never mutated by them.
package product

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Cost      decimal.Decimal `json:"cost"`
	Rating    int             `json:"rating"`
	ImageLink string          `json:"image"`
}

// Catalog is the lookup contract the cart service and the HTTP layer
// consume. FindByID returns (nil, nil) when no product matches.
type Catalog interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
