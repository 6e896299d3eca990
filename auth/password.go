package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the SHA-256 hex digest of a password. This is the
// scheme the accounts were originally stored with; changing it would
// lock every existing user out, so any migration has to rehash on login.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
