package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // enforces one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	CartID    uint     `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint     `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
