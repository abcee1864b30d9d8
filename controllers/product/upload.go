package productControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
)

// UploadDir resolves the image upload directory from the environment.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// POST /products/upload-image (admin)
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			apperr.Respond(c, apperr.BadRequest("VALIDATION_ERROR", "Image file is required"))
			return
		}

		saveDir := filepath.Join(UploadDir(), "products")
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			apperr.Respond(c, err)
			return
		}

		// uuid prefix keeps concurrent uploads with the same filename apart
		filename := uuid.NewString() + "_" + strings.ReplaceAll(file.Filename, " ", "_")
		if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"url": fmt.Sprintf("/uploads/products/%s", filename),
		})
	}
}
