package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/models"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

const idempotencyHeader = "x-idempotency-key"

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders/checkout
func Checkout(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, created, err := svc.Checkout(middleware.UserID(c), c.GetHeader(idempotencyHeader))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if created {
			broadcastNewOrder(*order)
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders?page&limit
func GetMyOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

		result, err := svc.GetMyOrders(middleware.UserID(c), page, limit)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /orders/admin/all?page&limit (admin)
func GetAllOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

		result, err := svc.GetAllOrders(page, limit)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /orders/admin/stats (admin)
func GetAdminStats(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.GetAdminStats()
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PATCH /orders/:id/status (admin)
func UpdateOrderStatus(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", "Invalid order id"))
			return
		}

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}
		status, ok := models.ParseOrderStatus(input.Status)
		if !ok {
			apperr.Respond(c, apperr.BadRequest("INVALID_STATUS", "Unknown order status: "+input.Status))
			return
		}

		order, err := svc.UpdateStatus(uint(orderID), status)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
