package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/storage"
)

// SetupRoutes is the single entry-point that wires up the auth, menu,
// order and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store storage.ImageStore) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Menu browsing + catalog administration
	SetupFoodRoutes(r, db, store)

	// Order placement and lifecycle
	SetupOrderRoutes(r, db)

	// Account administration + profile
	SetupUserRoutes(r, db)
}
