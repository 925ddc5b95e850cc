package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/services"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	users services.UserServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(users services.UserServiceProvider) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get returns the caller's profile, without the password hash.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	user, err := h.users.GetByID(identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update applies a partial self-service profile update.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	var payload struct {
		Username  *string `json:"username"`
		Age       *int    `json:"age"`
		Address   *string `json:"address"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	user, err := h.users.UpdateProfile(identity.UserID, models.UserUpdate{
		Username:  payload.Username,
		Age:       payload.Age,
		Address:   payload.Address,
		AvatarURL: payload.AvatarURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
