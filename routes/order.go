package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/JEYMISPAUL/master-delivery/controllers/order"
	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(db))
	{
		// Place a new order
		orders.POST("", middleware.RequireRoles(models.RoleClient),
			orderControllers.PlaceOrderHandler(db))

		// Role-scoped order listing and detail
		orders.GET("", orderControllers.ListOrdersHandler(db))
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Lifecycle transitions
		orders.PUT("/:orderID/accept", middleware.RequireRoles(models.RoleCourier),
			orderControllers.AcceptOrderHandler(db))
		orders.PUT("/:orderID/finish", middleware.RequireRoles(models.RoleClient, models.RoleCourier),
			orderControllers.FinishOrderHandler(db))
		orders.PUT("/:orderID/cancel", middleware.RequireRoles(models.RoleClient, models.RoleCourier),
			orderControllers.CancelOrderHandler(db))
		orders.PUT("/:orderID/release", middleware.RequireRoles(models.RoleCourier),
			orderControllers.ReleaseOrderHandler(db))
	}
}
