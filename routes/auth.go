package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/auth"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	group := r.Group("/auth")
	{
		group.POST("/register", auth.RegisterHandler(db))
		group.POST("/login", auth.LoginHandler(db))
	}
}
