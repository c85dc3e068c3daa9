package handler

import (
	"net/http"

	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/middleware"
	"bookhaven-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	authService     service.AuthService
}

func NewOrderHandler(checkoutService service.CheckoutService, authService service.AuthService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		authService:     authService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	orderID, err := h.checkoutService.Checkout(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.CheckoutResponse{OrderID: orderID})
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.checkoutService.Orders(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	requester, err := h.authService.UserByID(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	detail, err := h.checkoutService.Order(ctx, requester, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	if err := h.checkoutService.UpdateStatus(ctx, id, req.Status); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}
