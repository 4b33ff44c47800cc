package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/ec-shop/internal/api/middleware"
)

type setAddressRequest struct {
	Address string `json:"address"`
}

const minAddressLength = 20

// GetUser returns the user's own record; ?q=address narrows the
// response to the shipping address.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := extractPathParam(r.URL.Path, "/v1/users/")

	u, err := h.userSvc.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	claims, _ := middleware.GetUserFromContext(r.Context())
	if claims == nil || claims.Email != u.Email {
		respondJSONError(w, "User not authorized to access this resource", http.StatusForbidden)
		return
	}

	if r.URL.Query().Get("q") == "address" {
		respondJSON(w, http.StatusOK, map[string]string{"address": u.Address})
		return
	}

	respondJSON(w, http.StatusOK, u)
}

// SetAddress updates the user's shipping address.
func (h *Handlers) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID := extractPathParam(r.URL.Path, "/v1/users/")

	var req setAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Address) < minAddressLength {
		respondJSONError(w, "Address field must be at least 20 characters", http.StatusBadRequest)
		return
	}

	u, err := h.userSvc.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	claims, _ := middleware.GetUserFromContext(r.Context())
	if claims == nil || claims.Email != u.Email {
		respondJSONError(w, "User not authorized to access this resource", http.StatusForbidden)
		return
	}

	if err := h.userSvc.SetAddress(r.Context(), u, req.Address); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"address": u.Address})
}
