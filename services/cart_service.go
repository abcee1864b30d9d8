package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartView is the cart as returned to clients: items with live product data
// plus a total computed from current prices. Checkout snapshots prices
// separately, so this total may differ from what an order ends up costing.
type CartView struct {
	ID     uint              `json:"id,omitempty"`
	UserID string            `json:"user_id,omitempty"`
	Items  []models.CartItem `json:"items"`
	Total  float64           `json:"total"`
}

// GetOrCreateCart returns the user's cart, creating it when absent. The
// insert uses ON CONFLICT DO NOTHING on user_id, so two concurrent first-adds
// cannot both create a cart: one insert wins, the other is a no-op, and both
// callers fetch the same row afterwards.
func (s *CartService) GetOrCreateCart(userID string) (*models.Cart, error) {
	return getOrCreateCart(s.db, userID)
}

func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	insert := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&insert).Error; err != nil {
		return nil, err
	}

	// Re-fetch: on the conflict path the insert leaves the struct without an ID.
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity units of a product to the user's cart, aggregating
// with any existing line for the same product. The product lookup, cart
// upsert, stock check and line write all run in one transaction so the check
// and the write stay consistent under concurrent adds.
func (s *CartService) AddToCart(userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.BadRequest("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %d not found", productID))
			}
			return err
		}

		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var existing models.CartItem
		currentQuantity := 0
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&existing).Error
		switch {
		case err == nil:
			currentQuantity = existing.Quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first line for this product
		default:
			return err
		}

		newQuantity := currentQuantity + quantity
		if newQuantity > product.Stock {
			return apperr.BadRequest("INSUFFICIENT_STOCK", fmt.Sprintf(
				"Cannot add %d unit(s) of %q. Available stock: %d, already in cart: %d",
				quantity, product.Name, product.Stock, currentQuantity,
			)).WithDetails(map[string]any{
				"available": product.Stock,
				"inCart":    currentQuantity,
				"requested": quantity,
			})
		}

		if existing.ID != 0 {
			if err := tx.Model(&existing).Update("quantity", newQuantity).Error; err != nil {
				return err
			}
			existing.Quantity = newQuantity
			item = existing
			return nil
		}

		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	logger.Info().Str("user_id", userID).Uint("product_id", productID).
		Int("quantity", item.Quantity).Msg("cart item upserted")
	return &item, nil
}

// GetCart returns the cart with live product data. A user without a cart gets
// an empty view, never a 404.
func (s *CartService) GetCart(userID string) (*CartView, error) {
	var cart models.Cart
	err := s.db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CartView{Items: []models.CartItem{}, Total: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	view := &CartView{ID: cart.ID, UserID: cart.UserID, Items: cart.Items, Total: 0}
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}
	for _, item := range cart.Items {
		if item.Product != nil {
			view.Total += item.Product.Price * float64(item.Quantity)
		}
	}
	return view, nil
}

// RemoveFromCart deletes a single product line from the user's cart.
func (s *CartService) RemoveFromCart(userID string, productID uint) error {
	var cart models.Cart
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("CART_NOT_FOUND", "Cart not found")
		}
		return err
	}

	var item models.CartItem
	if err := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("CART_ITEM_NOT_FOUND", "Item not found in cart")
		}
		return err
	}

	return s.db.Delete(&models.CartItem{}, item.ID).Error
}

// ClearCart removes every line from the user's cart and reports how many were
// deleted.
func (s *CartService) ClearCart(userID string) (int64, error) {
	var cart models.Cart
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("CART_NOT_FOUND", "Cart not found")
		}
		return 0, err
	}

	res := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
