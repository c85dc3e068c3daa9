// Package apperr carries the failure taxonomy shared by the storage,
// service and HTTP layers. Every code is recovered at the HTTP boundary;
// none is fatal to the process.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeValidation         Code = "validation"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeOutOfStock         Code = "out_of_stock"
	CodeEmptyCart          Code = "empty_cart"
	CodeInvalidCredentials Code = "invalid_credentials"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(CodeConflict, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(CodeValidation, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(CodeUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(CodeForbidden, format, args...)
}

func OutOfStock(format string, args ...any) *Error {
	return New(CodeOutOfStock, format, args...)
}

func EmptyCart(format string, args ...any) *Error {
	return New(CodeEmptyCart, format, args...)
}

func InvalidCredentials() *Error {
	// one message for both unknown email and wrong password
	return New(CodeInvalidCredentials, "invalid credentials")
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
