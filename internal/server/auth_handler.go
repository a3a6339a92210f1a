package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/agentic-researcher/internal/config"
)

// AuthHandler exchanges a configured API key for a short-lived JWT.
// The expected key is stored bcrypt-hashed in the API_KEY_HASH environment
// variable; the plaintext never lives in config.
type AuthHandler struct {
	apiKeys    *config.APIKeyConfig
	jwtService *JWTService
	keyHash    string
}

// TokenRequest represents the request body for POST /auth/token
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse represents the response for POST /auth/token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// NewAuthHandler creates an auth handler reading the expected key hash from
// the environment.
func NewAuthHandler(apiKeys *config.APIKeyConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		apiKeys:    apiKeys,
		jwtService: jwtService,
		keyHash:    os.Getenv("API_KEY_HASH"),
	}
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.keyHash == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Token issuing is disabled: API_KEY_HASH is not set",
		})
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.APIKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "api_key is required"})
		return
	}

	if !h.apiKeys.VerifyKey(req.APIKey, h.keyHash) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(uuid.New())
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
