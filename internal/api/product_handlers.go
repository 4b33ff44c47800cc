package api

import (
	"net/http"
)

// GetProducts lists the catalog.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct returns one catalog entry.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/v1/products/")

	p, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if p == nil {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
