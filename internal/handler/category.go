package handler

import (
	"net/http"

	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	catalogService service.CatalogService
}

func NewCategoryHandler(catalogService service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

func (h *CategoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.Categories(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CategoryInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return httpError(err)
	}

	category, err := h.catalogService.CreateCategory(ctx, &input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var input dto.CategoryInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return httpError(err)
	}

	category, err := h.catalogService.UpdateCategory(ctx, id, &input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteCategory(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "category deleted successfully"})
}
