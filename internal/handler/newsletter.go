package handler

import (
	"net/http"

	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/service"

	"github.com/labstack/echo/v4"
)

type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	subscriber, err := h.newsletterService.Subscribe(ctx, req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, subscriber)
}
