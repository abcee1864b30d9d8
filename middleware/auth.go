package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

// ValidateToken authenticates the request from a Bearer token and stores the
// caller's identity (user_id, email, role) on the context.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		apperr.Respond(c, apperr.Unauthorized("UNAUTHORIZED", "Authorization header is missing"))
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &services.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		apperr.Respond(c, apperr.Unauthorized("UNAUTHORIZED", "Invalid or expired token"))
		c.Abort()
		return
	}

	c.Set("user_id", claims.Subject)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
	c.Next()
}

// RequireAdmin gates a route group to admin callers. Must run after
// ValidateToken.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		apperr.Respond(c, apperr.Forbidden("FORBIDDEN", "Admin access required"))
		c.Abort()
		return
	}
	c.Next()
}

// UserID returns the authenticated user's id set by ValidateToken.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}
