package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/services"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users    services.UserServiceProvider
	verifier auth.CredentialVerifier
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, verifier auth.CredentialVerifier) *AuthHandler {
	return &AuthHandler{users: users, verifier: verifier}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	if _, err := h.users.Register(payload.Username, payload.Email, payload.Password); err != nil {
		if err == models.ErrDuplicateEmail {
			log.Warn().Str("email", payload.Email).Msg("Registration with duplicate email")
		}
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "registration successful, please log in")
}

// Login verifies credentials and issues the credential proof via the
// configured verifier.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, models.NewValidationError("email and password are required"))
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	credential, err := h.verifier.Issue(w, user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue credential")
		writeError(w, err)
		return
	}

	response := map[string]any{
		"message": "login successful",
		"user":    user,
	}
	if credential != "" {
		response["token"] = credential
	}
	writeJSON(w, http.StatusOK, response)
}

// Logout revokes the credential. It always reports success: logging
// out while already logged out is fine, and the token verifier has
// nothing to revoke server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.verifier.Revoke(w, r); err != nil {
		log.Warn().Err(err).Msg("Credential revocation failed")
	}
	writeMessage(w, http.StatusOK, "logout successful")
}
