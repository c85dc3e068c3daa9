package handler

import (
	"errors"
	"net/http"

	"bookhaven-api/internal/apperr"

	"github.com/labstack/echo/v4"
)

// httpError translates the shared failure taxonomy into HTTP statuses.
// Anything unclassified falls through to echo's default 500 handling.
func httpError(err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return err
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperr.CodeValidation, apperr.CodeOutOfStock, apperr.CodeEmptyCart:
		status = http.StatusBadRequest
	case apperr.CodeUnauthorized, apperr.CodeInvalidCredentials:
		status = http.StatusUnauthorized
	case apperr.CodeForbidden:
		status = http.StatusForbidden
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeConflict:
		status = http.StatusConflict
	}
	return echo.NewHTTPError(status, appErr.Message)
}
