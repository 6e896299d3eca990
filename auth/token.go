package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/JEYMISPAUL/master-delivery/models"
)

const tokenTTL = 24 * time.Hour

// IssueToken mints an HS256 session token carrying the identity claims
// the handlers need (id, names, phone, role) plus the user's current
// token version.
func IssueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"surname": user.Surname,
		"phone":   user.Phone,
		"role":    string(user.Role),
		"tver":    user.TokenVersion,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
