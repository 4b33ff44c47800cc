package api

import (
	"log"
	"net/http"

	"github.com/example/ec-shop/internal/api/middleware"
	"github.com/example/ec-shop/internal/auth"
)

// NewRouter wires the /v1 routes. Auth, user and cart routes require a
// valid access token; the catalog is public.
func NewRouter(handlers *Handlers, jwtService *auth.JWTService) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(jwtService)

	// Auth
	mux.HandleFunc("/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.Register(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.Login(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Users
	mux.Handle("/v1/users/", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetUser(w, r)
		case http.MethodPut:
			handlers.SetAddress(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Products (public)
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProducts(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProduct(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart
	mux.Handle("/v1/cart", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetCart(w, r)
		case http.MethodPost:
			handlers.AddToCart(w, r)
		case http.MethodPut:
			handlers.UpdateCart(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/v1/cart/checkout", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			handlers.Checkout(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/v1/cart/", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			handlers.RemoveFromCart(w, r)
		default:
			respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	return withLogging(mux)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
