package handler

import (
	"net/http"

	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/middleware"
	"bookhaven-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	lines, err := h.cartService.Items(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.BookID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	item, err := h.cartService.Add(ctx, middleware.UserID(c), req.BookID, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}
	var req dto.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	item, err := h.cartService.SetQuantity(ctx, middleware.UserID(c), bookID, *req.Quantity)
	if err != nil {
		return httpError(err)
	}
	if item == nil {
		// quantity <= 0 removed the line
		return c.JSON(http.StatusOK, map[string]string{"message": "item removed from cart"})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}
	if err := h.cartService.Remove(ctx, middleware.UserID(c), bookID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item removed from cart"})
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.UserID(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *CartHandler) Merge(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MergeCartRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	lines, err := h.cartService.Merge(ctx, middleware.UserID(c), req.Items)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lines)
}
