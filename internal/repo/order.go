package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

// CreateOrder persists the order header and its line items in a single
// transaction. Either every row is written or none is.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeErr(err)
	}

	order.Items = items
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, degrade(ctx, "orders.get", err)
	}
	return &order, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uint, page Page) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC")
	return list[models.Order](ctx, "orders.list_user", page.apply(q))
}

func (r *GormRepo) ListOrders(ctx context.Context, page Page) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Order("created_at DESC").Order("id DESC")
	return list[models.Order](ctx, "orders.list", page.apply(q))
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	return updateByID[models.Order](ctx, r.DB, id, map[string]any{"status": status})
}
