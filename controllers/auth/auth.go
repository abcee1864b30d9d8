package authControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func Register(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		user, err := svc.Register(input.Email, input.Password, input.Name)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// POST /auth/login
func Login(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		token, user, err := svc.Login(input.Email, input.Password)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"user":         user,
		})
	}
}

// GET /auth/me
func Me(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Profile(middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
