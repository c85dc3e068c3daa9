package handler

import (
	"errors"
	"net/http"
	"testing"

	"bookhaven-api/internal/apperr"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"out of stock", apperr.OutOfStock("gone"), http.StatusBadRequest},
		{"empty cart", apperr.EmptyCart("cart is empty"), http.StatusBadRequest},
		{"invalid credentials", apperr.InvalidCredentials(), http.StatusUnauthorized},
		{"unauthorized", apperr.Unauthorized("not authenticated"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("not authorized"), http.StatusForbidden},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperr.Conflict("duplicate"), http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var httpErr *echo.HTTPError
			require.ErrorAs(t, httpError(tc.err), &httpErr)
			assert.Equal(t, tc.status, httpErr.Code)
		})
	}
}

func TestHTTPErrorPassesThroughUnknownErrors(t *testing.T) {
	plain := errors.New("disk on fire")
	assert.Equal(t, plain, httpError(plain))

	wrapped := apperr.NotFound("user not found")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, httpError(wrapped), &httpErr)
	assert.Equal(t, "user not found", httpErr.Message)
}
