package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamescape/gamescape-be/internal/models"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenVerifier implements CredentialVerifier with signed bearer
// tokens. There is no server-side revocation list; expiry is the only
// termination mechanism, and logout is a client-side discard.
type TokenVerifier struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenVerifier creates a TokenVerifier signing with the given
// secret; tokens expire after ttl.
func NewTokenVerifier(secret string, ttl time.Duration) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's identity claims.
func (v *TokenVerifier) Issue(w http.ResponseWriter, user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Authenticate validates the bearer token in the Authorization header.
func (v *TokenVerifier) Authenticate(r *http.Request) (models.Identity, error) {
	tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || tokenStr == "" {
		return models.Identity{}, models.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return models.Identity{}, models.ErrUnauthenticated
	}

	return models.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// Revoke is a no-op: the client discards the token and the server
// gives no guarantee before expiry.
func (v *TokenVerifier) Revoke(w http.ResponseWriter, r *http.Request) error {
	return nil
}
