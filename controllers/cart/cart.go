package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

type AddToCartInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// GET /cart
func GetCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.GetCart(middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart/add
func AddToCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		item, err := svc.AddToCart(middleware.UserID(c), input.ProductID, input.Quantity)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /cart/remove/:productId
func RemoveFromCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", "Invalid product id"))
			return
		}

		if err := svc.RemoveFromCart(middleware.UserID(c), uint(productID)); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart/clear
func ClearCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := svc.ClearCart(middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "removed": removed})
	}
}
