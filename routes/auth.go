package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/jaberb281-art/ecommerce-backend/controllers/auth"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

// SetupAuthRoutes registers the /auth endpoints.
func SetupAuthRoutes(r *gin.Engine, svc *services.AuthService) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(svc))
		authGroup.POST("/login", authControllers.Login(svc))
		authGroup.GET("/me", middleware.ValidateToken, authControllers.Me(svc))
	}
}
