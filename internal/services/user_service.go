package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/store"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetByID(id string) (models.User, error)
	UpdateProfile(id string, update models.UserUpdate) (models.User, error)
	ListUsers() ([]models.User, error)
	AdminCreate(username, email, password string, isAdmin bool) (models.User, error)
	AdminUpdate(id string, update models.UserUpdate) (models.User, error)
	AdminDelete(actorID, targetID string) error
}

// UserService provides business logic for registration, credential
// verification and user management.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) create(username, email, password string, isAdmin bool) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, models.NewValidationError("username, email and password are required")
	}

	// Explicit duplicate check first; the unique constraint in the
	// store is the backstop for a racing insert.
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, models.ErrDuplicateEmail
	} else if err != models.ErrNotFound {
		return models.User{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
		CreatedAt:    timeNow(),
	}
	if err := s.users.Create(user); err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Register creates a new regular user account.
func (s *UserService) Register(username, email, password string) (models.User, error) {
	return s.create(username, email, password, false)
}

// Authenticate verifies a user's credentials. The error is identical
// for an unknown email and a wrong password.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if err == models.ErrNotFound {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, models.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(id string) (models.User, error) {
	return s.users.FindByID(id)
}

// UpdateProfile applies a self-service partial update. Role changes
// are stripped here; only the admin path may touch them.
func (s *UserService) UpdateProfile(id string, update models.UserUpdate) (models.User, error) {
	update.IsAdmin = nil
	if update.Empty() {
		return models.User{}, models.NewValidationError("no fields to update")
	}
	if err := s.users.Update(id, update); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(id)
}

// ListUsers returns all users without their password hashes.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	// sanitize, in case a store implementation leaks the hash
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// AdminCreate creates a user on behalf of an admin, optionally with
// the admin role.
func (s *UserService) AdminCreate(username, email, password string, isAdmin bool) (models.User, error) {
	return s.create(username, email, password, isAdmin)
}

// AdminUpdate applies a partial update on behalf of an admin,
// including role changes.
func (s *UserService) AdminUpdate(id string, update models.UserUpdate) (models.User, error) {
	if update.Empty() {
		return models.User{}, models.NewValidationError("no fields to update")
	}
	if err := s.users.Update(id, update); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(id)
}

// AdminDelete removes a user account. Admins cannot delete their own
// account; collection entries and sessions cascade in the store.
func (s *UserService) AdminDelete(actorID, targetID string) error {
	if actorID == targetID {
		return models.NewValidationError("admins cannot delete their own account")
	}
	return s.users.Delete(targetID)
}
