package services

import (
	"errors"
	"time"

	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/store"
)

// timeNow is swapped in tests that care about ordering.
var timeNow = time.Now

// CollectionServiceProvider defines the interface for collection
// services. Every operation is scoped by the owner's user ID, which
// callers must take from the authenticated identity.
type CollectionServiceProvider interface {
	ListForOwner(userID string) ([]models.CollectedGame, error)
	AddOrGet(userID string, gameID int64, title, imageURL string, rating *float64) (models.CollectedGame, bool, error)
	RemoveForOwner(userID string, gameID int64) error
}

// CollectionService provides business logic for the per-user game
// collection.
type CollectionService struct {
	entries store.CollectionStore
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(entries store.CollectionStore) *CollectionService {
	return &CollectionService{entries: entries}
}

// ListForOwner returns the owner's collection, newest first.
func (s *CollectionService) ListForOwner(userID string) ([]models.CollectedGame, error) {
	return s.entries.ListByUser(userID)
}

// AddOrGet inserts a collection entry for the (owner, game) pair, or
// returns the existing one unchanged. The second return value reports
// whether a new entry was created; a duplicate add is an idempotent
// no-op, never an error.
func (s *CollectionService) AddOrGet(userID string, gameID int64, title, imageURL string, rating *float64) (models.CollectedGame, bool, error) {
	if gameID <= 0 {
		return models.CollectedGame{}, false, models.NewValidationError("gameId is required")
	}
	if title == "" {
		return models.CollectedGame{}, false, models.NewValidationError("title is required")
	}

	if existing, err := s.entries.FindByUserAndGame(userID, gameID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.CollectedGame{}, false, err
	}

	entry, err := s.entries.Insert(models.CollectedGame{
		UserID:    userID,
		GameID:    gameID,
		Title:     title,
		ImageURL:  imageURL,
		Rating:    rating,
		CreatedAt: timeNow(),
	})
	if err != nil {
		// A near-simultaneous add can pass the check above and lose
		// the insert race; the unique constraint turns that into the
		// same "already exists" outcome.
		if errors.Is(err, models.ErrDuplicateEntry) {
			existing, ferr := s.entries.FindByUserAndGame(userID, gameID)
			if ferr != nil {
				return models.CollectedGame{}, false, ferr
			}
			return existing, false, nil
		}
		return models.CollectedGame{}, false, err
	}
	return entry, true, nil
}

// RemoveForOwner deletes the entry for the (owner, game) pair. An
// absent entry is models.ErrNotFound, a normal outcome.
func (s *CollectionService) RemoveForOwner(userID string, gameID int64) error {
	removed, err := s.entries.DeleteByUserAndGame(userID, gameID)
	if err != nil {
		return err
	}
	if !removed {
		return models.ErrNotFound
	}
	return nil
}
