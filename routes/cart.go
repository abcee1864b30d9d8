package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/jaberb281-art/ecommerce-backend/controllers/cart"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

// SetupCartRoutes registers the /cart endpoints. All require authentication.
func SetupCartRoutes(r *gin.Engine, svc *services.CartService) {
	cartGroup := r.Group("/cart", middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetCart(svc))
		cartGroup.POST("/add", cartControllers.AddToCart(svc))
		cartGroup.DELETE("/remove/:productId", cartControllers.RemoveFromCart(svc))
		cartGroup.DELETE("/clear", cartControllers.ClearCart(svc))
	}
}
