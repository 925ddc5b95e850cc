package store

import (
	"sort"
	"sync"
	"time"

	"github.com/gamescape/gamescape-be/internal/models"
)

// Memory bundles in-memory implementations of all three stores over a
// shared state, so that deleting a user cascades to their collection
// entries and sessions just like the sqlite backend. Used as a test
// double.
type Memory struct {
	Users       *MemoryUserStore
	Collections *MemoryCollectionStore
	Sessions    *MemorySessionStore
}

type memoryState struct {
	mu          sync.Mutex
	users       map[string]models.User
	entries     []models.CollectedGame
	nextEntryID int64
	sessions    map[string]models.Session
}

// NewMemory creates an empty in-memory store set.
func NewMemory() *Memory {
	state := &memoryState{
		users:       make(map[string]models.User),
		nextEntryID: 1,
		sessions:    make(map[string]models.Session),
	}
	return &Memory{
		Users:       &MemoryUserStore{state: state},
		Collections: &MemoryCollectionStore{state: state},
		Sessions:    &MemorySessionStore{state: state},
	}
}

// MemoryUserStore implements UserStore in memory.
type MemoryUserStore struct {
	state *memoryState
}

func (s *MemoryUserStore) FindByEmail(email string) (models.User, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, user := range s.state.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *MemoryUserStore) FindByID(id string) (models.User, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	user, ok := s.state.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *MemoryUserStore) Create(user models.User) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, existing := range s.state.users {
		if existing.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	s.state.users[user.ID] = user
	return nil
}

func (s *MemoryUserStore) Update(id string, update models.UserUpdate) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	user, ok := s.state.users[id]
	if !ok {
		return models.ErrNotFound
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Age != nil {
		user.Age = update.Age
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}
	s.state.users[id] = user
	return nil
}

func (s *MemoryUserStore) Delete(id string) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.state.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.state.users, id)

	// Cascade to collection entries and sessions.
	kept := s.state.entries[:0]
	for _, entry := range s.state.entries {
		if entry.UserID != id {
			kept = append(kept, entry)
		}
	}
	s.state.entries = kept
	for hash, session := range s.state.sessions {
		if session.Identity.UserID == id {
			delete(s.state.sessions, hash)
		}
	}
	return nil
}

func (s *MemoryUserStore) List() ([]models.User, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	users := make([]models.User, 0, len(s.state.users))
	for _, user := range s.state.users {
		user.PasswordHash = ""
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// MemoryCollectionStore implements CollectionStore in memory.
type MemoryCollectionStore struct {
	state *memoryState
}

func (s *MemoryCollectionStore) ListByUser(userID string) ([]models.CollectedGame, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	var entries []models.CollectedGame
	for _, entry := range s.state.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (s *MemoryCollectionStore) FindByUserAndGame(userID string, gameID int64) (models.CollectedGame, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, entry := range s.state.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			return entry, nil
		}
	}
	return models.CollectedGame{}, models.ErrNotFound
}

func (s *MemoryCollectionStore) Insert(entry models.CollectedGame) (models.CollectedGame, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, existing := range s.state.entries {
		if existing.UserID == entry.UserID && existing.GameID == entry.GameID {
			return models.CollectedGame{}, models.ErrDuplicateEntry
		}
	}
	entry.ID = s.state.nextEntryID
	s.state.nextEntryID++
	s.state.entries = append(s.state.entries, entry)
	return entry, nil
}

func (s *MemoryCollectionStore) DeleteByUserAndGame(userID string, gameID int64) (bool, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for i, entry := range s.state.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			s.state.entries = append(s.state.entries[:i], s.state.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// MemorySessionStore implements SessionStore in memory.
type MemorySessionStore struct {
	state *memoryState
}

func (s *MemorySessionStore) Create(session models.Session) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.sessions[session.TokenHash] = session
	return nil
}

func (s *MemorySessionStore) FindByTokenHash(tokenHash string) (models.Session, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	session, ok := s.state.sessions[tokenHash]
	if !ok {
		return models.Session{}, models.ErrNotFound
	}
	return session, nil
}

func (s *MemorySessionStore) DeleteByTokenHash(tokenHash string) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	delete(s.state.sessions, tokenHash)
	return nil
}

func (s *MemorySessionStore) DeleteExpired(now time.Time) (int64, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	var removed int64
	for hash, session := range s.state.sessions {
		if session.Expired(now) {
			delete(s.state.sessions, hash)
			removed++
		}
	}
	return removed, nil
}
