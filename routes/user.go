package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/JEYMISPAUL/master-delivery/controllers/user"
	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// Own profile, any authenticated role.
	profile := r.Group("/profile")
	profile.Use(middleware.ValidateToken(db))
	{
		profile.GET("", userControllers.GetProfileHandler(db))
		profile.PUT("", userControllers.UpdateProfileHandler(db))
	}

	// Account administration, admins only.
	admin := r.Group("/admin/users")
	admin.Use(middleware.ValidateToken(db), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("", userControllers.GetUsersByRoleHandler(db))
		admin.POST("", userControllers.RegisterEmployeeHandler(db))
		admin.PUT("/:userID/block", userControllers.BlockUserHandler(db))
		admin.PUT("/:userID/unblock", userControllers.UnblockUserHandler(db))
		admin.PUT("/:userID/role", userControllers.ChangeRoleHandler(db))
	}
}
