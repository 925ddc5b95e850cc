package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the frontend-era deployments used.
const bcryptCost = 10

// HashPassword derives a salted one-way hash from the plaintext. The
// plaintext is never logged or stored.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored
// digest. A mismatch is a normal negative result, not an error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
