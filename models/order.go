package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // created at checkout, awaiting shipment
	OrderStatusShipped   OrderStatus = "SHIPPED"   // handed to the carrier
	OrderStatusCompleted OrderStatus = "COMPLETED" // delivered, terminal
	OrderStatusCancelled OrderStatus = "CANCELLED" // terminal
)

// allowedTransitions is the full order lifecycle. Terminal states map to an
// empty set, so any further transition is rejected.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus maps a request value onto the status enum.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// AllowedTransitions returns the statuses reachable from s.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	return allowedTransitions[s]
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         string      `gorm:"not null;index" json:"user_id"`
	User           *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Total          float64     `gorm:"not null" json:"total"` // frozen at checkout, never recomputed
	Status         OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	IdempotencyKey *string     `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"order_id"`
	ProductID uint     `gorm:"not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"` // snapshot at purchase time
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
