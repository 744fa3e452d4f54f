package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"toystore-api/internal/apperr"
	"toystore-api/internal/dto"
	"toystore-api/internal/middleware"
	"toystore-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func orderIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(id), nil
}

// requesterID prefers the authenticated identity from the middleware and
// falls back to the body field for legacy clients.
func requesterID(c echo.Context, bodyUserID string) string {
	if id := middleware.UserIDFrom(c); id != "" {
		return id
	}
	return bodyUserID
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.UserID == "" {
		req.UserID = middleware.UserIDFrom(c)
	}

	resp, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx, c.QueryParam("status"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c, "orderId")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHandler) ListUserOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListUserOrders(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) AcceptOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c, "orderId")
	if err != nil {
		return err
	}

	if err := h.orderService.AcceptOrder(ctx, orderID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order accepted",
	})
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req dto.CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.orderService.CancelOrder(ctx, orderID, requesterID(c, req.UserID)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *OrderHandler) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req dto.UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	err = h.orderService.UpdateShippingAddress(ctx, orderID, requesterID(c, req.UserID), req.ShippingAddress)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *OrderHandler) ItemTracking(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c, "orderId")
	if err != nil {
		return err
	}
	itemID, err := orderIDParam(c, "itemId")
	if err != nil {
		return err
	}

	tracking, err := h.orderService.ItemTracking(ctx, orderID, itemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"tracking": tracking,
	})
}
