package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	foodController "github.com/JEYMISPAUL/master-delivery/controllers/food"
	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
	"github.com/JEYMISPAUL/master-delivery/storage"
)

func SetupFoodRoutes(r *gin.Engine, db *gorm.DB, store storage.ImageStore) {
	// Browsing, for any authenticated user. Visibility is narrowed per
	// role inside the listing itself.
	menu := r.Group("/menu")
	menu.Use(middleware.ValidateToken(db))
	{
		menu.GET("", foodController.GetMenuHandler(db))
		menu.GET("/characteristics", foodController.ListCharacteristicsHandler(db))
		menu.GET("/:foodID", foodController.GetFoodHandler(db))
		menu.GET("/:foodID/stock", foodController.GetStockHandler(db))
		menu.GET("/:foodID/characteristics", foodController.GetFoodCharacteristicsHandler(db))
		menu.POST("/:foodID/comments", foodController.AddCommentHandler(db))
	}

	// Catalog administration, chefs and admins only.
	edit := r.Group("/admin/menu")
	edit.Use(middleware.ValidateToken(db), middleware.RequireRoles(models.RoleChef, models.RoleAdmin))
	{
		edit.POST("", foodController.CreateFoodHandler(db, store))
		edit.PUT("/:foodID", foodController.UpdateFoodHandler(db, store))
		edit.PUT("/:foodID/stock", foodController.UpdateStockHandler(db))
		edit.DELETE("/:foodID", foodController.DeleteFoodHandler(db, store))
		edit.GET("/export", foodController.ExportMenuToExcelHandler(db))

		edit.POST("/characteristics", foodController.CreateCharacteristicHandler(db))
		edit.PUT("/characteristics/:charID", foodController.UpdateCharacteristicHandler(db))
		edit.DELETE("/characteristics/:charID", foodController.DeleteCharacteristicHandler(db))
	}
}
