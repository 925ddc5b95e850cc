package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamescape/gamescape-be/internal/models"
)

// stubVerifier returns a fixed identity or error.
type stubVerifier struct {
	identity models.Identity
	err      error
}

func (v *stubVerifier) Issue(http.ResponseWriter, models.User) (string, error) { return "", nil }
func (v *stubVerifier) Authenticate(*http.Request) (models.Identity, error) {
	return v.identity, v.err
}
func (v *stubVerifier) Revoke(http.ResponseWriter, *http.Request) error { return nil }

func TestAuthenticateAttachesIdentity(t *testing.T) {
	want := models.Identity{UserID: "user-1", Username: "alice", Email: "a@x.com"}
	var got models.Identity
	var ok bool

	handler := Authenticate(&stubVerifier{identity: want})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/collection", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !ok || got != want {
		t.Errorf("identity in context = %+v (ok=%v), want %+v", got, ok, want)
	}
}

func TestAuthenticateRejectsWith401(t *testing.T) {
	called := false
	handler := Authenticate(&stubVerifier{err: models.ErrUnauthenticated})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/collection", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if called {
		t.Error("next handler was called despite failed authentication")
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   models.Identity
		wantStatus int
	}{
		{name: "admin passes", identity: models.Identity{UserID: "u1", IsAdmin: true}, wantStatus: http.StatusOK},
		{name: "non-admin forbidden", identity: models.Identity{UserID: "u2"}, wantStatus: http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest("GET", "/admin/users", nil)
			r = r.WithContext(WithIdentity(r.Context(), test.identity))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, test.wantStatus)
			}
		})
	}
}

func TestRequireAdminPanicsWithoutAuthenticate(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	defer func() {
		if recover() == nil {
			t.Error("RequireAdmin without Authenticate did not panic")
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/users", nil))
}
