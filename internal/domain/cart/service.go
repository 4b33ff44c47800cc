package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/example/ec-shop/internal/apperr"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
)

// Publisher publishes domain events. A nil Publisher disables
// publishing.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	carts     Store
	catalog   product.Catalog
	publisher Publisher
}

func NewService(carts Store, catalog product.Catalog, publisher Publisher) *Service {
	return &Service{
		carts:     carts,
		catalog:   catalog,
		publisher: publisher,
	}
}

// GetCartByUser returns the user's cart. Pure read.
func (s *Service) GetCartByUser(ctx context.Context, u *user.User) (*Cart, error) {
	c, err := s.carts.FindByOwner(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound("User does not have a cart")
	}
	return c, nil
}

// AddProductToCart appends a new line item, creating the cart on first
// use. The product's cost is snapshotted into the item as it is now.
func (s *Service) AddProductToCart(ctx context.Context, u *user.User, productID string, quantity int) (*Cart, error) {
	c, err := s.carts.FindByOwner(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		c, err = s.carts.Create(ctx, u.Email)
		if err != nil {
			return nil, apperr.Internal("Something went wrong while creating cart", err)
		}
	}

	if c.IndexOf(productID) >= 0 {
		return nil, apperr.BadRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
	}

	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, apperr.BadRequest("Product doesn't exist in database")
	}

	c.Items = append(c.Items, CartItem{Product: *p, Quantity: quantity})
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return c, nil
}

// UpdateProductInCart replaces the quantity of an existing line item.
// The new quantity is caller-supplied; positivity is the HTTP layer's
// concern.
func (s *Service) UpdateProductInCart(ctx context.Context, u *user.User, productID string, quantity int) (*Cart, error) {
	c, err := s.carts.FindByOwner(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		return nil, apperr.BadRequest("User does not have a cart. Use POST to create cart and add a product")
	}

	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, apperr.BadRequest("Product doesn't exist in database")
	}

	i := c.IndexOf(productID)
	if i < 0 {
		return nil, apperr.BadRequest("Product not in cart")
	}

	c.Items[i].Quantity = quantity
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return c, nil
}

// DeleteProductFromCart removes a line item.
func (s *Service) DeleteProductFromCart(ctx context.Context, u *user.User, productID string) error {
	c, err := s.carts.FindByOwner(ctx, u.Email)
	if err != nil {
		return fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		return apperr.BadRequest("User does not have a cart")
	}

	i := c.IndexOf(productID)
	if i < 0 {
		return apperr.BadRequest("Product not in cart")
	}

	c.Items = slices.Delete(c.Items, i, i+1)
	if err := s.carts.Save(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	return nil
}

// Checkout debits the cart's total from the user's wallet and empties
// the cart. The debit and the clear happen in one atomic store
// operation, so a concurrent checkout observing a stale balance is
// rejected rather than double-debited.
func (s *Service) Checkout(ctx context.Context, u *user.User) error {
	c, err := s.carts.FindByOwner(ctx, u.Email)
	if err != nil {
		return fmt.Errorf("find cart: %w", err)
	}
	if c == nil {
		return apperr.NotFound("User does not have a cart")
	}
	if len(c.Items) == 0 {
		return apperr.BadRequest("Cart does not have any products")
	}
	if !u.HasSetNonDefaultAddress() {
		return apperr.BadRequest("Address is not set")
	}

	total := c.Total()
	if total.GreaterThan(u.WalletMoney) {
		return apperr.BadRequest("User does not have sufficient balance")
	}

	if err := s.carts.CompleteCheckout(ctx, u.Email, total); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return apperr.BadRequest("User does not have sufficient balance")
		}
		return fmt.Errorf("complete checkout: %w", err)
	}
	u.WalletMoney = u.WalletMoney.Sub(total)

	if s.publisher != nil {
		event := CheckoutCompleted{
			OwnerEmail:  u.Email,
			Total:       total,
			Items:       c.Items,
			CompletedAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, u.Email, event); err != nil {
			log.Printf("[Cart] Failed to publish checkout event for %s: %v", u.Email, err)
		}
	}

	return nil
}
