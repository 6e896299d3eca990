package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
)

var (
	ErrInvalidCredentials = errors.New("email and password do not match")
	ErrBlocked            = errors.New("your account has been blocked, contact an administrator for details")
)

// FieldErrors carries per-field validation messages so callers can
// redisplay the form with the offending fields tagged.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterAccount validates and persists a new account with the given
// role. Duplicate email or phone fails validation; the password is
// hashed before it is stored.
func RegisterAccount(db *gorm.DB, req RegisterRequest, role models.Role) (models.User, error) {
	fields := FieldErrors{}
	if req.Name == "" {
		fields["name"] = "name is required"
	}
	if req.Surname == "" {
		fields["surname"] = "surname is required"
	}
	if req.Phone == "" {
		fields["phone"] = "phone is required"
	}
	if req.Email == "" {
		fields["email"] = "email is required"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}

	var count int64
	if req.Email != "" {
		if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return models.User{}, err
		}
		if count > 0 {
			fields["email"] = "this email is already registered"
		}
	}
	if req.Phone != "" {
		count = 0
		if err := db.Model(&models.User{}).Where("phone = ?", req.Phone).Count(&count).Error; err != nil {
			return models.User{}, err
		}
		if count > 0 {
			fields["phone"] = "this phone is already registered"
		}
	}
	if len(fields) > 0 {
		return models.User{}, fields
	}

	user := models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: HashPassword(req.Password),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate compares the hashed password against the stored one and
// rejects blocked accounts.
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	var user models.User
	err := db.Where("email = ? AND password = ?", email, HashPassword(password)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if user.Blocked {
		return models.User{}, ErrBlocked
	}
	return user, nil
}

// -------- Handlers --------

// POST /auth/register is public self-registration, always a client.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := RegisterAccount(db, req, models.RoleClient)
		if err != nil {
			var fields FieldErrors
			if errors.As(err, &fields) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register account"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := Authenticate(db, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			case errors.Is(err, ErrBlocked):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
			}
			return
		}

		token, err := IssueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
