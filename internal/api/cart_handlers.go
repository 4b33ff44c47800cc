package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errNoClaims = errors.New("no auth claims in context")

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the authenticated user's cart.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.cartSvc.GetCartByUser(r.Context(), u)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// AddToCart adds a product as a new line item.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	req, ok := decodeCartItemRequest(w, r)
	if !ok {
		return
	}

	c, err := h.cartSvc.AddProductToCart(r.Context(), u, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// UpdateCart replaces the quantity of an existing line item.
func (h *Handlers) UpdateCart(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	req, ok := decodeCartItemRequest(w, r)
	if !ok {
		return
	}

	c, err := h.cartSvc.UpdateProductInCart(r.Context(), u, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// RemoveFromCart deletes a line item.
func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	productID := extractPathParam(r.URL.Path, "/v1/cart/")
	if productID == "" {
		respondJSONError(w, "productId is required", http.StatusBadRequest)
		return
	}

	if err := h.cartSvc.DeleteProductFromCart(r.Context(), u, productID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout debits the cart total and empties the cart.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.cartSvc.Checkout(r.Context(), u); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeCartItemRequest decodes and validates the shared add/update
// body. Quantity positivity lives here, not in the cart service.
func decodeCartItemRequest(w http.ResponseWriter, r *http.Request) (cartItemRequest, bool) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	if req.ProductID == "" {
		respondJSONError(w, "productId is required", http.StatusBadRequest)
		return req, false
	}
	if req.Quantity <= 0 {
		respondJSONError(w, "Quantity must be a positive integer", http.StatusBadRequest)
		return req, false
	}
	return req, true
}
