// Package mocks provides in-memory implementations of the store
// contracts for tests. All three views share one mutex, which gives
// CompleteCheckout the same atomicity the postgres transaction
// provides.
package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
)

// Memory holds the shared state behind the per-contract views.
type Memory struct {
	mu       sync.Mutex
	users    map[string]*user.User // keyed by email
	products map[string]product.Product
	carts    map[string]*cart.Cart // keyed by owner email

	// Error injection for failure-path tests.
	CreateCartErr error
	SaveCartErr   error
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*user.User),
		products: make(map[string]product.Product),
		carts:    make(map[string]*cart.Cart),
	}
}

// Users returns the user.Store view.
func (m *Memory) Users() user.Store { return &userStore{m} }

// Catalog returns the product.Catalog view.
func (m *Memory) Catalog() product.Catalog { return &catalogStore{m} }

// Carts returns the cart.Store view.
func (m *Memory) Carts() cart.Store { return &cartStore{m} }

// SeedProduct registers a product in the catalog.
func (m *Memory) SeedProduct(p product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// SeedUser stores a user directly.
func (m *Memory) SeedUser(u user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = &u
}

// UserByEmail returns a snapshot of the stored user, for assertions.
func (m *Memory) UserByEmail(email string) (user.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return user.User{}, false
	}
	return *u, true
}

type userStore struct{ m *Memory }

func (s *userStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) Create(ctx context.Context, u *user.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *u
	s.m.users[u.Email] = &cp
	return nil
}

func (s *userStore) Save(ctx context.Context, u *user.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *u
	s.m.users[u.Email] = &cp
	return nil
}

type catalogStore struct{ m *Memory }

func (s *catalogStore) FindByID(ctx context.Context, id string) (*product.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *catalogStore) List(ctx context.Context) ([]product.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]product.Product, 0, len(s.m.products))
	for _, p := range s.m.products {
		out = append(out, p)
	}
	return out, nil
}

type cartStore struct{ m *Memory }

func (s *cartStore) FindByOwner(ctx context.Context, ownerEmail string) (*cart.Cart, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.carts[ownerEmail]
	if !ok {
		return nil, nil
	}
	return copyCart(c), nil
}

func (s *cartStore) Create(ctx context.Context, ownerEmail string) (*cart.Cart, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.CreateCartErr != nil {
		return nil, s.m.CreateCartErr
	}
	c := &cart.Cart{OwnerEmail: ownerEmail, Items: []cart.CartItem{}}
	s.m.carts[ownerEmail] = copyCart(c)
	return c, nil
}

func (s *cartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.SaveCartErr != nil {
		return s.m.SaveCartErr
	}
	s.m.carts[c.OwnerEmail] = copyCart(c)
	return nil
}

func (s *cartStore) CompleteCheckout(ctx context.Context, ownerEmail string, total decimal.Decimal) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[ownerEmail]
	if !ok || u.WalletMoney.LessThan(total) {
		return cart.ErrInsufficientFunds
	}

	u.WalletMoney = u.WalletMoney.Sub(total)
	if c, ok := s.m.carts[ownerEmail]; ok {
		c.Items = []cart.CartItem{}
	}
	return nil
}

func copyCart(c *cart.Cart) *cart.Cart {
	items := make([]cart.CartItem, len(c.Items))
	copy(items, c.Items)
	return &cart.Cart{OwnerEmail: c.OwnerEmail, Items: items}
}
