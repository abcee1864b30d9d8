package routes

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/services"
)

// SetupRoutes is the single entry point that wires every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	authSvc := services.NewAuthService(db, os.Getenv("JWT_SECRET"), bcryptRounds())
	cartSvc := services.NewCartService(db)
	orderSvc := services.NewOrderService(db)

	SetupAuthRoutes(r, authSvc)
	SetupCatalogRoutes(r, db)
	SetupCartRoutes(r, cartSvc)
	SetupOrderRoutes(r, orderSvc)
}

func bcryptRounds() int {
	rounds, err := strconv.Atoi(os.Getenv("BCRYPT_ROUNDS"))
	if err != nil {
		return 10
	}
	return rounds
}
