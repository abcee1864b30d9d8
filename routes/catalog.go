package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/jaberb281-art/ecommerce-backend/controllers/category"
	productControllers "github.com/jaberb281-art/ecommerce-backend/controllers/product"
	"github.com/jaberb281-art/ecommerce-backend/middleware"
)

// SetupCatalogRoutes registers /categories and /products. Reads are public,
// writes are admin-gated.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	categoryGroup := r.Group("/categories")
	{
		categoryGroup.GET("", categoryControllers.GetAllCategories(db))
		categoryGroup.GET("/:id", categoryControllers.GetCategoryByID(db))

		admin := categoryGroup.Group("", middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("", categoryControllers.CreateCategory(db))
			admin.PATCH("/:id", categoryControllers.UpdateCategory(db))
			admin.DELETE("/:id", categoryControllers.DeleteCategory(db))
		}
	}

	productGroup := r.Group("/products")
	{
		productGroup.GET("", productControllers.GetProducts(db))
		productGroup.GET("/:id", productControllers.GetProductByID(db))

		admin := productGroup.Group("", middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("", productControllers.CreateProduct(db))
			admin.PATCH("/:id", productControllers.UpdateProduct(db))
			admin.DELETE("/:id", productControllers.DeleteProduct(db))
			admin.POST("/upload-image", productControllers.UploadImage())
		}
	}

	// Separate prefix: a GET sibling of /products/:id would collide with the
	// wildcard in the router tree.
	adminProducts := r.Group("/admin/products", middleware.ValidateToken, middleware.RequireAdmin)
	{
		adminProducts.GET("/export-excel", productControllers.ExportProductsToExcel(db))
	}
}
