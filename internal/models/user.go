package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsAdmin      bool      `json:"isAdmin"`
	Age          *int      `json:"age,omitempty"`
	Address      string    `json:"address,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserUpdate carries the optional fields of a partial user update.
// A nil field is left untouched.
type UserUpdate struct {
	Username  *string
	Age       *int
	Address   *string
	AvatarURL *string
	IsAdmin   *bool
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Age == nil && u.Address == nil &&
		u.AvatarURL == nil && u.IsAdmin == nil
}

// Identity is the authenticated caller attached to a request context.
// Only the authenticate middleware produces one; handlers and services
// take the owner ID from here and never from the request body.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// IdentityOf derives the claims carried by a session or token from a
// user row at issuance time.
func IdentityOf(u User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
