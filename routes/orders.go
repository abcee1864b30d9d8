package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/jaberb281-art/ecommerce-backend/controllers/order"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

// SetupOrderRoutes registers the /orders endpoints.
func SetupOrderRoutes(r *gin.Engine, svc *services.OrderService) {
	orderGroup := r.Group("/orders", middleware.ValidateToken)
	{
		orderGroup.POST("/checkout", orderControllers.Checkout(svc))
		orderGroup.GET("", orderControllers.GetMyOrders(svc))

		admin := orderGroup.Group("/admin", middleware.RequireAdmin)
		{
			admin.GET("/all", orderControllers.GetAllOrders(svc))
			admin.GET("/stats", orderControllers.GetAdminStats(svc))
			admin.GET("/live", orderControllers.OrderFeedHandler)
		}

		orderGroup.PATCH("/:id/status", middleware.RequireAdmin, orderControllers.UpdateOrderStatus(svc))
	}
}
