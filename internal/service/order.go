package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/notify"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
	"github.com/Skotchmaster/online_bookstore/internal/util"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Notifier notify.Notifier
}

// CreateOrder turns the client cart into an order with its line items and
// returns the new order id. Line prices are taken as submitted.
func (s *OrderService) CreateOrder(ctx context.Context, caller *models.User, req transport.CreateOrderRequest) (uint, error) {
	if caller == nil {
		return 0, ErrUnauthenticated
	}
	if err := validate(req); err != nil {
		return 0, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	sum := decimal.Zero
	for i, it := range req.Items {
		price, err := models.ParseMoneyMax(it.Price, models.MaxPrice)
		if err != nil {
			return 0, fmt.Errorf("%w: items[%d]: %v", ErrValidation, i, err)
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, models.OrderItem{
			BookID:   it.BookID,
			Quantity: uint(it.Quantity),
			Price:    price,
		})
	}

	total, err := models.ParseMoneyMax(req.TotalPrice, models.MaxTotal)
	if err != nil {
		return 0, fmt.Errorf("%w: total_price: %v", ErrValidation, err)
	}
	if itemsSum := models.NewMoney(sum); !total.Equal(itemsSum) {
		return 0, fmt.Errorf("%w: total_price %s does not match items sum %s", ErrValidation, total, itemsSum)
	}

	order := &models.Order{
		UserID:          caller.ID,
		Status:          models.OrderStatusPending,
		TotalPrice:      total,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingZip:     req.ShippingZip,
		ShippingPhone:   req.ShippingPhone,
		Notes:           req.Notes,
	}

	created, err := s.Repo.CreateOrder(ctx, order, items)
	if err != nil {
		return 0, err
	}

	s.notifyOwner(ctx, caller, created)
	return created.ID, nil
}

func (s *OrderService) notifyOwner(ctx context.Context, caller *models.User, order *models.Order) {
	if s.Notifier == nil {
		return
	}

	name := caller.Name
	if name == "" {
		name = "Customer"
	}
	n := notify.Notification{
		Title:   "New Order Received",
		Content: fmt.Sprintf("Order #%d from %s for %s", order.ID, name, order.TotalPrice),
		OrderID: order.ID,
	}
	if err := s.Notifier.NotifyOwner(ctx, n); err != nil {
		logging.FromContext(ctx).Warn("notify_owner_failed", "order_id", order.ID, "error", err)
	}
}

// GetOrder returns the order with its items. Callers other than admins only
// see their own orders.
func (s *OrderService) GetOrder(ctx context.Context, caller *models.User, id uint) (*models.Order, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	if !caller.IsAdmin() && order.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, caller *models.User, limit, offset int) ([]models.Order, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	p, err := page(limit, offset, util.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListUserOrders(ctx, caller.ID, p)
}

func (s *OrderService) ListAllOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	p, err := page(limit, offset, util.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListOrders(ctx, p)
}

// UpdateStatus moves the order to status. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.Repo.UpdateOrderStatus(ctx, id, models.OrderStatus(req.Status))
}
