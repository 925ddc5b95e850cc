package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamescape/gamescape-be/internal/games"
	"github.com/gamescape/gamescape-be/internal/models"
)

// GameHandler proxies catalog lookups to the external game API.
type GameHandler struct {
	catalog games.CatalogProvider
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(catalog games.CatalogProvider) *GameHandler {
	return &GameHandler{catalog: catalog}
}

const searchPageSize = 10

// Search proxies a free-text catalog search.
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, models.NewValidationError("search query is required"))
		return
	}

	result, err := h.catalog.Search(r.Context(), query, searchPageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Detail proxies a single catalog entry lookup.
func (h *GameHandler) Detail(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
