package services

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PageMeta describes one page of an offset-paginated listing.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type OrderPage struct {
	Data []models.Order `json:"data"`
	Meta PageMeta       `json:"meta"`
}

type AdminStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalProducts int64   `json:"totalProducts"`
}

func NewPageMeta(total int64, page, limit int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return PageMeta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// NormalizePage clamps page/limit to sane values, applying defaultLimit when
// the client sent none.
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// Checkout converts the user's cart into an order. The returned bool is true
// when a new order was created, false when an existing order was returned for
// a replayed idempotency key.
//
// The stock decrement is a single guarded UPDATE per line: it only applies
// when the row still holds enough stock at the instant of the write, so two
// concurrent checkouts can never oversell no matter what either of them read
// beforehand. Stock decrements, order creation and the cart clear commit or
// roll back as one unit.
func (s *OrderService) Checkout(userID, idempotencyKey string) (*models.Order, bool, error) {
	// Replayed key: return the original order, touch nothing.
	if idempotencyKey != "" {
		existing, err := s.findByIdempotencyKey(idempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			logger.Info().Str("user_id", userID).Uint("order_id", existing.ID).
				Msg("idempotent checkout, returning existing order")
			return existing, false, nil
		}
	}

	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return nil, false, apperr.BadRequest("CART_EMPTY", "Your cart is empty")
	}
	if err != nil {
		return nil, false, err
	}

	var order models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		total := 0.0
		items := make([]models.OrderItem, 0, len(cart.Items))

		for _, line := range cart.Items {
			// Guarded decrement: the WHERE clause re-checks stock at write
			// time, so a stale pre-read cannot cause an oversell. Zero rows
			// affected means another checkout got there first.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return s.outOfStockError(tx, line)
			}

			// Snapshot the price from the fresh in-transaction row, not from
			// whatever the cart was showing when the client last looked.
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
			total += product.Price * float64(line.Quantity)
		}

		order = models.Order{
			UserID: userID,
			Total:  total,
			Status: models.OrderStatusPending,
			Items:  items,
		}
		if idempotencyKey != "" {
			order.IdempotencyKey = &idempotencyKey
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Same transaction: a crash after commit can never leave a paid cart
		// behind, and a rollback restores the cart untouched.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})

	if err != nil {
		// Two requests with the same key can both miss the lookup above; the
		// unique index decides the winner and the loser returns its order.
		if idempotencyKey != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.findByIdempotencyKey(idempotencyKey)
			if lookupErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	logger.Info().Str("user_id", userID).Uint("order_id", order.ID).
		Float64("total", order.Total).Msg("order created")
	return &order, true, nil
}

func (s *OrderService) findByIdempotencyKey(key string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Where("idempotency_key = ?", key).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) outOfStockError(tx *gorm.DB, line models.CartItem) error {
	name := fmt.Sprintf("product %d", line.ProductID)
	available := 0
	var product models.Product
	if err := tx.First(&product, line.ProductID).Error; err == nil {
		name = product.Name
		available = product.Stock
	}
	return apperr.BadRequest("OUT_OF_STOCK", fmt.Sprintf(
		"Not enough stock for %s. Available: %d, requested: %d",
		name, available, line.Quantity,
	)).WithDetails(map[string]any{
		"product":   name,
		"available": available,
		"requested": line.Quantity,
	})
}

// GetMyOrders lists the user's orders newest-first.
func (s *OrderService) GetMyOrders(userID string, page, limit int) (*OrderPage, error) {
	page, limit = NormalizePage(page, limit, 10)

	var total int64
	if err := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	orders := []models.Order{}
	err := s.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return &OrderPage{Data: orders, Meta: NewPageMeta(total, page, limit)}, nil
}

// GetAllOrders is the admin view: every order newest-first, with the owning
// user attached. User serialization exposes public identity only.
func (s *OrderService) GetAllOrders(page, limit int) (*OrderPage, error) {
	page, limit = NormalizePage(page, limit, 20)

	var total int64
	if err := s.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, err
	}

	orders := []models.Order{}
	err := s.db.Preload("Items.Product").Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return &OrderPage{Data: orders, Meta: NewPageMeta(total, page, limit)}, nil
}

// UpdateStatus applies one lifecycle transition. Nothing else on the order is
// writable through this path.
func (s *OrderService) UpdateStatus(orderID uint, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("ORDER_NOT_FOUND", fmt.Sprintf("Order %d not found", orderID))
			}
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return apperr.BadRequest("INVALID_STATUS_TRANSITION", fmt.Sprintf(
				"Cannot transition order from %s to %s", order.Status, next,
			)).WithDetails(map[string]any{
				"allowedTransitions": order.Status.AllowedTransitions(),
			})
		}

		from := order.Status
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return err
		}
		logger.Info().Uint("order_id", order.ID).
			Str("from", string(from)).Str("to", string(next)).Msg("order status updated")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAdminStats computes revenue and counts with three independent queries
// run concurrently. Cancelled orders never count toward revenue.
func (s *OrderService) GetAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	errs := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs <- s.db.Model(&models.Order{}).
			Where("status <> ?", models.OrderStatusCancelled).
			Select("COALESCE(SUM(total), 0)").
			Scan(&stats.TotalRevenue).Error
	}()
	go func() {
		defer wg.Done()
		errs <- s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error
	}()
	go func() {
		defer wg.Done()
		errs <- s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}
