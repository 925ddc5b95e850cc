// Package store defines the persistence abstraction and its
// implementations. Services depend only on the interfaces here, so the
// sqlite backend and the in-memory double are interchangeable.
package store

import (
	"time"

	"github.com/gamescape/gamescape-be/internal/models"
)

// UserStore persists user accounts.
type UserStore interface {
	// FindByEmail returns the user with the given email, including the
	// password hash, or models.ErrNotFound.
	FindByEmail(email string) (models.User, error)
	// FindByID returns the user with the given ID, without the
	// password hash, or models.ErrNotFound.
	FindByID(id string) (models.User, error)
	// Create inserts a new user. A duplicate email is reported as
	// models.ErrDuplicateEmail, backed by the unique constraint.
	Create(user models.User) error
	// Update applies a partial update. models.ErrNotFound if the user
	// does not exist; an empty update is a no-op.
	Update(id string, update models.UserUpdate) error
	// Delete removes a user and, through cascading, their collection
	// entries and sessions. models.ErrNotFound if absent.
	Delete(id string) error
	// List returns all users without password hashes.
	List() ([]models.User, error)
}

// CollectionStore persists per-user collection entries.
type CollectionStore interface {
	// ListByUser returns the user's entries newest first; ties on the
	// creation time are broken by descending entry ID.
	ListByUser(userID string) ([]models.CollectedGame, error)
	// FindByUserAndGame returns the entry for the (user, game) pair or
	// models.ErrNotFound.
	FindByUserAndGame(userID string, gameID int64) (models.CollectedGame, error)
	// Insert adds a new entry, assigning its ID, and returns it. A
	// (user, game) pair already present is reported as
	// models.ErrDuplicateEntry, backed by the unique constraint.
	Insert(entry models.CollectedGame) (models.CollectedGame, error)
	// DeleteByUserAndGame removes the matching entry and reports
	// whether a row was removed.
	DeleteByUserAndGame(userID string, gameID int64) (bool, error)
}

// SessionStore persists server-side login sessions.
type SessionStore interface {
	Create(session models.Session) error
	// FindByTokenHash returns the session or models.ErrNotFound.
	FindByTokenHash(tokenHash string) (models.Session, error)
	// DeleteByTokenHash removes the session; deleting an absent
	// session is not an error.
	DeleteByTokenHash(tokenHash string) error
	// DeleteExpired removes sessions whose expiry is before now and
	// returns how many were removed.
	DeleteExpired(now time.Time) (int64, error)
}
