package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/store"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "gamescape_session"

const sessionTokenBytes = 32

// SessionVerifier implements CredentialVerifier with server-side
// session records keyed by the hash of an opaque cookie token.
// Sessions persist until explicit logout or the absolute expiry.
type SessionVerifier struct {
	sessions store.SessionStore
	ttl      time.Duration
	secure   bool
}

// NewSessionVerifier creates a SessionVerifier. Sessions live for ttl
// from issuance; secure controls the cookie's Secure flag.
func NewSessionVerifier(sessions store.SessionStore, ttl time.Duration, secure bool) *SessionVerifier {
	return &SessionVerifier{sessions: sessions, ttl: ttl, secure: secure}
}

// hashToken maps the opaque token to its storage key. Only the hash is
// persisted, so a leaked database does not yield usable credentials.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Issue creates a session record and sets the cookie. The credential
// travels exclusively in the cookie, so the returned string is empty.
func (v *SessionVerifier) Issue(w http.ResponseWriter, user models.User) (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := time.Now()
	session := models.Session{
		TokenHash: hashToken(token),
		Identity:  models.IdentityOf(user),
		CreatedAt: now,
		ExpiresAt: now.Add(v.ttl),
	}
	if err := v.sessions.Create(session); err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return "", nil
}

// Authenticate resolves the session cookie to the denormalized
// identity claims. Expired sessions are removed on sight.
func (v *SessionVerifier) Authenticate(r *http.Request) (models.Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return models.Identity{}, models.ErrUnauthenticated
	}

	tokenHash := hashToken(cookie.Value)
	session, err := v.sessions.FindByTokenHash(tokenHash)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return models.Identity{}, err
		}
		return models.Identity{}, models.ErrUnauthenticated
	}
	if session.Expired(time.Now()) {
		if err := v.sessions.DeleteByTokenHash(tokenHash); err != nil {
			log.Warn().Err(err).Msg("Failed to remove expired session")
		}
		return models.Identity{}, models.ErrUnauthenticated
	}
	return session.Identity, nil
}

// Revoke destroys the session record and clears the cookie. Logging
// out without a live session still succeeds.
func (v *SessionVerifier) Revoke(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := v.sessions.DeleteByTokenHash(hashToken(cookie.Value)); err != nil {
			log.Warn().Err(err).Msg("Failed to delete session on logout")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return nil
}
