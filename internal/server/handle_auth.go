package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the response for a successful login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// VerifyResponse is the response for GET /api/auth/verify.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

// ChangePasswordRequest is the request body for POST
// /api/auth/change-password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

func handleAuthLogin(store Store, sessions *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		admin, err := store.AdminByUsername(r.Context(), req.Username)
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sess := sessions.Create(admin.Username)
		writeJSON(w, http.StatusOK, TokenResponse{
			Token:    sess.Token,
			Username: sess.Username,
		})
	}
}

func handleAuthVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := adminFrom(r)
		writeJSON(w, http.StatusOK, VerifyResponse{
			Valid:    true,
			Username: sess.Username,
		})
	}
}

func handleAuthChangePassword(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		sess := adminFrom(r)
		if err := store.SetAdminPassword(r.Context(), sess.Username, string(hash)); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{Status: "ok"})
	}
}
