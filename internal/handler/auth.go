package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/success-meals/api/internal/auth"
)

// AuthHandler handles the admin console gate. A single shared password is
// exchanged for a short-lived session token. This is cosmetic access
// control for the admin views, not real authentication: the data
// endpoints need their own server-side authorization rules.
type AuthHandler struct {
	jwtSecret    string
	password     string
	passwordHash string // bcrypt; preferred when set
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(jwtSecret, password, passwordHash string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, password: password, passwordHash: passwordHash}
}

// RegisterRoutes registers the login endpoint on the given Chi router.
// Expected to be mounted at /admin, outside the authenticated group.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

// --- Request / Response types ---

type loginRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// --- Handlers ---

// Login compares the submitted password against the configured secret and
// issues a session token on match.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required"})
		return
	}

	if !h.match(req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid password"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret)
	if err != nil {
		log.Printf("ERROR: generate token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresIn: int(auth.SessionTTL.Seconds()),
	})
}

func (h *AuthHandler) match(password string) bool {
	if h.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(password)) == nil
	}
	if h.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.password), []byte(password)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
