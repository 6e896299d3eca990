package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/auth"
	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

// -------- Core Logic --------

// SetBlocked flips the blocked flag and returns a message describing
// the outcome. Flipping to the current value is a no-op.
func SetBlocked(db *gorm.DB, userID uint, blocked bool) (string, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("user not found")
		}
		return "", err
	}

	if user.Blocked == blocked {
		if blocked {
			return "the user was already blocked", nil
		}
		return "the user was not blocked", nil
	}

	if err := db.Model(&user).Update("blocked", blocked).Error; err != nil {
		return "", err
	}
	if blocked {
		return "the user has been blocked", nil
	}
	return "the user has been unblocked", nil
}

// -------- Handlers --------

// GET /admin/users?role=client returns users of one role. Listing admins
// excludes the caller, so an admin cannot block or demote themselves.
func GetUsersByRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := models.ParseRole(c.DefaultQuery("role", string(models.RoleClient)))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		query := db.Where("role = ?", role).Order("created_at DESC")
		if role == models.RoleAdmin {
			query = query.Where("id <> ?", middleware.CurrentUser(c).ID)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// POST /admin/users registers an employee (courier, chef or admin).
func RegisterEmployeeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			auth.RegisterRequest
			Role string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role, ok := models.ParseRole(req.Role)
		if !ok || role == models.RoleClient {
			role = models.RoleCourier
		}

		user, err := auth.RegisterAccount(db, req.RegisterRequest, role)
		if err != nil {
			var fields auth.FieldErrors
			if errors.As(err, &fields) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register employee"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// PUT /admin/users/:userID/block
func BlockUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}
		msg, err := SetBlocked(db, id, true)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

// PUT /admin/users/:userID/unblock
func UnblockUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}
		msg, err := SetBlocked(db, id, false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// PUT /admin/users/:userID/role
func ChangeRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c)
		if !ok {
			return
		}

		var req changeRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		role, valid := models.ParseRole(req.Role)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		res := db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change role"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "role updated"})
	}
}
