package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
)

const principalKey = "principal"

// Principal is the authenticated identity handlers act on behalf of.
type Principal struct {
	ID      uint
	Name    string
	Surname string
	Phone   string
	Role    models.Role
}

func (p Principal) FullName() string {
	return p.Name + " " + p.Surname
}

// CurrentUser returns the principal ValidateToken stored on the context.
func CurrentUser(c *gin.Context) Principal {
	v, _ := c.Get(principalKey)
	p, _ := v.(Principal)
	return p
}

// SetCurrentUser injects a principal directly; used by tests that call
// handlers without going through ValidateToken.
func SetCurrentUser(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// ValidateToken parses the bearer token and loads the account to check
// the token version and the blocked flag, so profile edits and blocks
// take effect on live sessions.
func ValidateToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(float64)
		tver, _ := claims["tver"].(float64)

		var user models.User
		if err := db.First(&user, "id = ?", uint(userID)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}
		if user.TokenVersion != int(tver) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			c.Abort()
			return
		}
		if user.Blocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been blocked"})
			c.Abort()
			return
		}

		SetCurrentUser(c, Principal{
			ID:      user.ID,
			Name:    user.Name,
			Surname: user.Surname,
			Phone:   user.Phone,
			Role:    user.Role,
		})
		c.Next()
	}
}
