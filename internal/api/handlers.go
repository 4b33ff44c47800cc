package api

import (
	"net/http"

	"github.com/example/ec-shop/internal/api/middleware"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
)

type Handlers struct {
	userSvc    *user.Service
	cartSvc    *cart.Service
	catalog    product.Catalog
	jwtService *auth.JWTService
}

func NewHandlers(userSvc *user.Service, cartSvc *cart.Service, catalog product.Catalog, jwtService *auth.JWTService) *Handlers {
	return &Handlers{
		userSvc:    userSvc,
		cartSvc:    cartSvc,
		catalog:    catalog,
		jwtService: jwtService,
	}
}

// currentUser resolves the authenticated user from the token claims.
func (h *Handlers) currentUser(r *http.Request) (*user.User, error) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return nil, errNoClaims
	}
	return h.userSvc.GetByEmail(r.Context(), claims.Email)
}
