package categoryControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories := []models.Category{}
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Products").First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// POST /categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		category := models.Category{Name: input.Name, Description: input.Description}
		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Conflict("CATEGORY_EXISTS", "A category with this name already exists"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// PATCH /categories/:id (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", err.Error()))
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found"))
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
		if len(updates) > 0 {
			if err := db.Model(&category).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					apperr.Respond(c, apperr.Conflict("CATEGORY_EXISTS", "A category with this name already exists"))
					return
				}
				apperr.Respond(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /categories/:id (admin)
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Category{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			apperr.Respond(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
