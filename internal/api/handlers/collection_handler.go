package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/services"
)

// CollectionHandler handles the authenticated user's game collection.
// The owner is always taken from the request identity, never from the
// payload, so one user can never touch another's collection.
type CollectionHandler struct {
	collection services.CollectionServiceProvider
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collection services.CollectionServiceProvider) *CollectionHandler {
	return &CollectionHandler{collection: collection}
}

// CollectPayload defines the structure for add-to-collection requests.
type CollectPayload struct {
	GameID   int64    `json:"gameId"`
	Title    string   `json:"title"`
	ImageURL string   `json:"imageUrl"`
	Rating   *float64 `json:"rating"`
}

// List returns the caller's collection, newest first.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	entries, err := h.collection.ListForOwner(identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.CollectedGame{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Add inserts a game into the caller's collection, or returns the
// existing entry. 201 signals a new entry, 200 an existing one.
func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	var payload CollectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("invalid request body"))
		return
	}

	entry, created, err := h.collection.AddOrGet(identity.UserID, payload.GameID,
		payload.Title, payload.ImageURL, payload.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, entry)
}

// Remove deletes a game from the caller's collection.
func (h *CollectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, models.ErrUnauthenticated)
		return
	}

	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameId"), 10, 64)
	if err != nil {
		writeError(w, models.NewValidationError("invalid game id"))
		return
	}

	if err := h.collection.RemoveForOwner(identity.UserID, gameID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "game removed from collection")
}
