package models

import "time"

// Session is a server-side login record. The opaque token handed to
// the client is never stored; only its SHA-256 hash is persisted. The
// identity claims are denormalized from the user row at login time.
type Session struct {
	TokenHash string
	Identity  Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its absolute expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
