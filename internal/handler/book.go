package handler

import (
	"net/http"
	"strconv"

	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/service"

	"github.com/labstack/echo/v4"
)

type BookHandler struct {
	catalogService service.CatalogService
}

func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

func (h *BookHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	query := repository.BookQuery{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "category must be numeric")
		}
		query.CategoryID = id
	}

	books, err := h.catalogService.ListBooks(ctx, query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// ListAdmin serves the unfiltered catalog for the admin panel.
func (h *BookHandler) ListAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.catalogService.ListBooks(ctx, repository.BookQuery{})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.catalogService.BookByID(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Related(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	books, err := h.catalogService.RelatedBooks(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.BookInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return httpError(err)
	}

	book, err := h.catalogService.CreateBook(ctx, &input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var input dto.BookInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return httpError(err)
	}

	book, err := h.catalogService.UpdateBook(ctx, id, &input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteBook(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "book deleted successfully"})
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be numeric")
	}
	return id, nil
}
