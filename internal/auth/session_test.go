package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/store"
)

// issueSession logs the test user in and returns the session cookie.
func issueSession(t *testing.T, verifier *SessionVerifier) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	credential, err := verifier.Issue(w, testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if credential != "" {
		t.Fatalf("Issue() credential = %q, want empty for cookie transport", credential)
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			if !cookie.HttpOnly {
				t.Error("session cookie is not HttpOnly")
			}
			return cookie
		}
	}
	t.Fatal("Issue() did not set the session cookie")
	return nil
}

func TestSessionVerifierRoundTrip(t *testing.T) {
	verifier := NewSessionVerifier(store.NewMemory().Sessions, time.Hour, false)
	cookie := issueSession(t, verifier)

	r := httptest.NewRequest("GET", "/collection", nil)
	r.AddCookie(cookie)

	identity, err := verifier.Authenticate(r)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if want := models.IdentityOf(testUser()); identity != want {
		t.Errorf("Authenticate() = %+v, want %+v", identity, want)
	}
}

func TestSessionVerifierRejectsMissingOrUnknownCookie(t *testing.T) {
	verifier := NewSessionVerifier(store.NewMemory().Sessions, time.Hour, false)

	r := httptest.NewRequest("GET", "/collection", nil)
	if _, err := verifier.Authenticate(r); err != models.ErrUnauthenticated {
		t.Errorf("Authenticate() without cookie error = %v, want ErrUnauthenticated", err)
	}

	r = httptest.NewRequest("GET", "/collection", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged-token"})
	if _, err := verifier.Authenticate(r); err != models.ErrUnauthenticated {
		t.Errorf("Authenticate() with unknown token error = %v, want ErrUnauthenticated", err)
	}
}

func TestSessionVerifierRejectsExpired(t *testing.T) {
	sessions := store.NewMemory().Sessions
	verifier := NewSessionVerifier(sessions, -time.Minute, false)
	cookie := issueSession(t, verifier)

	r := httptest.NewRequest("GET", "/collection", nil)
	r.AddCookie(cookie)
	if _, err := verifier.Authenticate(r); err != models.ErrUnauthenticated {
		t.Fatalf("Authenticate() with expired session error = %v, want ErrUnauthenticated", err)
	}

	// The expired record is removed on sight.
	if _, err := sessions.FindByTokenHash(hashToken(cookie.Value)); err != models.ErrNotFound {
		t.Errorf("expired session still stored, FindByTokenHash error = %v", err)
	}
}

func TestSessionVerifierRevokeIsIdempotent(t *testing.T) {
	verifier := NewSessionVerifier(store.NewMemory().Sessions, time.Hour, false)
	cookie := issueSession(t, verifier)

	r := httptest.NewRequest("POST", "/logout", nil)
	r.AddCookie(cookie)
	if err := verifier.Revoke(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	// The session is gone.
	check := httptest.NewRequest("GET", "/collection", nil)
	check.AddCookie(cookie)
	if _, err := verifier.Authenticate(check); err != models.ErrUnauthenticated {
		t.Errorf("Authenticate() after revoke error = %v, want ErrUnauthenticated", err)
	}

	// Revoking again, or without any cookie, still succeeds.
	again := httptest.NewRequest("POST", "/logout", nil)
	again.AddCookie(cookie)
	if err := verifier.Revoke(httptest.NewRecorder(), again); err != nil {
		t.Errorf("second Revoke() error = %v", err)
	}
	if err := verifier.Revoke(httptest.NewRecorder(), httptest.NewRequest("POST", "/logout", nil)); err != nil {
		t.Errorf("Revoke() without cookie error = %v", err)
	}
}
