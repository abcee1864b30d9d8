package productControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/jaberb281-art/ecommerce-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestGetProductsSearchIgnoresCase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)

	seed := []models.Product{
		{Name: "Espresso Machine", Price: 120, Stock: 5},
		{Name: "Ceramic Mug", Description: "Holds a double espresso", Price: 8, Stock: 20},
		{Name: "Desk Lamp", Price: 35, Stock: 10},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	router := gin.New()
	router.GET("/products", GetProducts(db))

	req := httptest.NewRequest(http.MethodGet, "/products?search=ESPRESSO", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 matches for ESPRESSO, got %d", len(body.Data))
	}
	for _, p := range body.Data {
		if p.Name == "Desk Lamp" {
			t.Errorf("search matched an unrelated product: %s", p.Name)
		}
	}
}
