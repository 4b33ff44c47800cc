package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop/internal/api"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/infrastructure/store/mocks"
)

func newTestServer(t *testing.T) (*httptest.Server, *mocks.Memory) {
	t.Helper()
	m := mocks.NewMemory()
	jwtService := auth.NewJWTService("test-secret-key-that-is-long-enough!", 15*time.Minute)
	userSvc := user.NewService(m.Users())
	cartSvc := cart.NewService(m.Carts(), m.Catalog(), nil)
	handlers := api.NewHandlers(userSvc, cartSvc, m.Catalog(), jwtService)

	srv := httptest.NewServer(api.NewRouter(handlers, jwtService))
	t.Cleanup(srv.Close)
	return srv, m
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register: %v", body)

	tokens, ok := body["tokens"].(map[string]any)
	require.True(t, ok)
	token, ok := tokens["token"].(string)
	require.True(t, ok)
	return token
}

func seedDefaultProducts(m *mocks.Memory) {
	m.SeedProduct(product.Product{ID: "prod-a", Name: "Widget", Category: "Tools", Cost: decimal.NewFromInt(10)})
	m.SeedProduct(product.Product{ID: "prod-b", Name: "Gadget", Category: "Tools", Cost: decimal.NewFromInt(5)})
}

func TestRegisterLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	token := registerAndLogin(t, srv)
	assert.NotEmpty(t, token)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	u := body["user"].(map[string]any)
	assert.Equal(t, "test@example.com", u["email"])
	assert.Equal(t, user.DefaultAddress, u["address"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", body["message"])
}

func TestCartEndpoints_RequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/v1/cart"},
		{http.MethodPost, "/v1/cart"},
		{http.MethodPut, "/v1/cart"},
		{http.MethodPut, "/v1/cart/checkout"},
		{http.MethodDelete, "/v1/cart/prod-a"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			resp, _ := doJSON(t, route.method, srv.URL+route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestCartFlow(t *testing.T) {
	srv, m := newTestServer(t)
	seedDefaultProducts(m)
	token := registerAndLogin(t, srv)

	// No cart yet.
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User does not have a cart", body["message"])

	// Add two products.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-a", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-b", "quantity": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["cartItems"], 2)

	// Duplicate add is rejected.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-a", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product already in cart. Use the cart sidebar to update or remove product from cart", body["message"])

	// Non-positive quantity is a request-shape error.
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-a", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Quantity must be a positive integer", body["message"])

	// Update quantity.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-a", "quantity": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Remove one product.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/cart/prod-b", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["cartItems"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(5), item["quantity"])
}

func TestCheckoutFlow(t *testing.T) {
	srv, m := newTestServer(t)
	seedDefaultProducts(m)
	token := registerAndLogin(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/cart", token, map[string]any{
		"productId": "prod-a", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Address still unset.
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Address is not set", body["message"])

	// Set the address, then checkout succeeds.
	stored, ok := m.UserByEmail("test@example.com")
	require.True(t, ok)
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/users/"+stored.ID, token, map[string]string{
		"address": "221B Baker Street, London NW1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Wallet debited: 500 - 20 = 480.
	stored, ok = m.UserByEmail("test@example.com")
	require.True(t, ok)
	assert.True(t, stored.WalletMoney.Equal(decimal.NewFromInt(480)), "wallet = %s", stored.WalletMoney)

	// Cart is empty but still exists.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["cartItems"])
}

func TestUserEndpoints(t *testing.T) {
	srv, m := newTestServer(t)
	token := registerAndLogin(t, srv)

	stored, ok := m.UserByEmail("test@example.com")
	require.True(t, ok)

	// Address too short.
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/v1/users/"+stored.ID, token, map[string]string{
		"address": "too short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Address field must be at least 20 characters", body["message"])

	// Address projection.
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/v1/users/%s?q=address", srv.URL, stored.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"address": user.DefaultAddress}, body)

	// Another user's record is forbidden.
	other := user.User{ID: "other-id", Name: "Other", Email: "other@example.com", WalletMoney: decimal.NewFromInt(500), Address: user.DefaultAddress}
	m.SeedUser(other)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/users/other-id", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	srv, m := newTestServer(t)
	seedDefaultProducts(m)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/products/prod-a", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Widget", body["name"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", body["message"])
}
