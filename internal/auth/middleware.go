package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/models"
)

func writeAuthError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}

// Authenticate creates a middleware that resolves the request's
// credential proof via the verifier and attaches the identity to the
// request context. Missing or invalid credentials end the request with
// 401; 403 is reserved for role failures.
func Authenticate(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.Authenticate(r)
			if err != nil {
				if err != models.ErrUnauthenticated {
					log.Error().Err(err).Msg("Credential verification failed")
				}
				writeAuthError(w, http.StatusUnauthorized, "unauthenticated", models.ErrUnauthenticated.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin rejects authenticated non-admin callers with 403. It
// must be chained strictly after Authenticate: a missing identity in
// the context is a routing bug, not a client error, and panics so the
// recoverer surfaces it as a 500.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			panic("auth: RequireAdmin chained without Authenticate")
		}
		if !identity.IsAdmin {
			writeAuthError(w, http.StatusForbidden, "forbidden", models.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
