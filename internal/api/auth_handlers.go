package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authResponse struct {
	User   *user.User    `json:"user"`
	Tokens tokenResponse `json:"tokens"`
}

// Register creates an account and returns an access token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondJSONError(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooWeak) {
			respondJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{
		User:   u,
		Tokens: tokenResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// Login verifies credentials and returns an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.userSvc.GetByEmail(r.Context(), req.Email)
	if err != nil {
		respondJSONError(w, "Incorrect email or password", http.StatusUnauthorized)
		return
	}
	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		respondJSONError(w, "Incorrect email or password", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		User:   u,
		Tokens: tokenResponse{Token: token, ExpiresAt: expiresAt},
	})
}
