// Package auth provides credential hashing, session/token issuance and
// the request authentication and authorization middleware.
package auth

import (
	"context"
	"net/http"

	"github.com/gamescape/gamescape-be/internal/models"
)

// CredentialVerifier issues and verifies a request credential proof.
// Two implementations exist: server-side sessions carried in a cookie,
// and signed bearer tokens. A deployment picks exactly one at startup;
// they are never mixed.
type CredentialVerifier interface {
	// Issue creates a credential for the user after a successful
	// password verification. The returned string is the credential
	// sent in the response body; implementations that transport the
	// credential exclusively via a cookie return "".
	Issue(w http.ResponseWriter, user models.User) (string, error)
	// Authenticate resolves the request's credential proof to an
	// identity, or models.ErrUnauthenticated.
	Authenticate(r *http.Request) (models.Identity, error)
	// Revoke terminates the credential. It is idempotent and always
	// reports success to the client, even when nothing was revoked.
	Revoke(w http.ResponseWriter, r *http.Request) error
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the authenticated identity.
// Only the Authenticate middleware should call this.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the authenticated identity attached by
// the Authenticate middleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
