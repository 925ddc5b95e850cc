package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/services"
)

// AdminHandler handles the admin user-management panel. All routes are
// behind the Authenticate and RequireAdmin middleware.
type AdminHandler struct {
	users services.UserServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users services.UserServiceProvider) *AdminHandler {
	return &AdminHandler{users: users}
}

// List returns all user accounts without their password hashes.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Add creates a user on behalf of an admin, optionally with the admin
// role.
func (h *AdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	user, err := h.users.AdminCreate(payload.Username, payload.Email, payload.Password, payload.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User created by admin")
	writeJSON(w, http.StatusCreated, user)
}

// Delete removes a user account. Deleting one's own admin account is
// rejected.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	targetID := chi.URLParam(r, "id")
	if err := h.users.AdminDelete(identity.UserID, targetID); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("user_id", targetID).Msg("User deleted by admin")
	writeMessage(w, http.StatusOK, "user deleted")
}

// Update applies a partial update to a user on behalf of an admin,
// including role changes.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	var payload struct {
		Username  *string `json:"username"`
		Age       *int    `json:"age"`
		Address   *string `json:"address"`
		AvatarURL *string `json:"avatarUrl"`
		IsAdmin   *bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	user, err := h.users.AdminUpdate(targetID, models.UserUpdate{
		Username:  payload.Username,
		Age:       payload.Age,
		Address:   payload.Address,
		AvatarURL: payload.AvatarURL,
		IsAdmin:   payload.IsAdmin,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
