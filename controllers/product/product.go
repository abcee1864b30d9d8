package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
	"github.com/jaberb281-art/ecommerce-backend/services"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	Image       string   `json:"image"`
	CategoryID  *uint    `json:"category_id"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	CategoryID  *uint    `json:"category_id"`
}

// GET /products?page&limit&categoryId&search
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		page, limit = services.NormalizePage(page, limit, 20)

		var categoryID uint
		if raw := c.Query("categoryId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", "Invalid categoryId"))
				return
			}
			categoryID = uint(id)
		}

		filter := func(tx *gorm.DB) *gorm.DB {
			if search := c.Query("search"); search != "" {
				// LOWER on both sides is case-insensitive on every dialect,
				// unlike a plain LIKE on Postgres.
				like := "%" + strings.ToLower(search) + "%"
				tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
			}
			if categoryID != 0 {
				tx = tx.Where("category_id = ?", categoryID)
			}
			return tx
		}

		var total int64
		if err := filter(db.Model(&models.Product{})).Count(&total).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		products := []models.Product{}
		if err := filter(db.Preload("Category")).
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"meta": services.NewPageMeta(total, page, limit),
		})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("PRODUCT_NOT_FOUND", "Product not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       *input.Price,
			Stock:       *input.Stock,
			Image:       input.Image,
			CategoryID:  input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PATCH /products/:id (admin)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("PRODUCT_NOT_FOUND", "Product not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id (admin)
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			apperr.Respond(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("PRODUCT_NOT_FOUND", "Product not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
