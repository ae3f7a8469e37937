package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/middleware/auth"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req transport.CreateOrderRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_order_failed", err)
	}

	id, err := h.Svc.CreateOrder(ctx, auth.CurrentUser(c), req)
	if err != nil {
		return fail(l, "create_order_failed", err)
	}

	l.Info("create_order_success", "order_id", id)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{ID: id})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_order_failed", "invalid id", err)
	}

	order, err := h.Svc.GetOrder(ctx, auth.CurrentUser(c), id)
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	if order == nil {
		return notFound(l, "get_order_failed", "order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.mine")

	limit, offset, err := pageParams(c, service.UserOrdersDefaultLimit)
	if err != nil {
		return badRequest(l, "list_my_orders_failed", err.Error(), err)
	}

	orders, err := h.Svc.ListUserOrders(ctx, auth.CurrentUser(c), limit, offset)
	if err != nil {
		return fail(l, "list_my_orders_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(orders, limit, offset))
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	limit, offset, err := pageParams(c, service.AllOrdersDefaultLimit)
	if err != nil {
		return badRequest(l, "list_orders_failed", err.Error(), err)
	}

	orders, err := h.Svc.ListAllOrders(ctx, limit, offset)
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(orders, limit, offset))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "update_order_status_failed", "invalid id", err)
	}

	var req transport.UpdateOrderStatusRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_order_status_failed", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req)
	if err != nil {
		return fail(l, "update_order_status_failed", err)
	}
	if order == nil {
		return notFound(l, "update_order_status_failed", "order")
	}

	l.Info("update_order_status_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
