package handler

import (
	"net/http"
	"time"

	"bookhaven-api/internal/config"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/middleware"
	"bookhaven-api/internal/service"
	"bookhaven-api/internal/session"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
	cfg         config.Session
}

func NewAuthHandler(authService service.AuthService, sessions *session.Manager, cfg config.Session) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

func (h *AuthHandler) setSessionCookie(c echo.Context, userID int, ttl time.Duration) {
	token := h.sessions.Create(userID, ttl)
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	h.setSessionCookie(c, user.ID, h.cfg.TTL)
	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	ttl := h.cfg.TTL
	if req.Remember {
		ttl = h.cfg.RememberTTL
	}
	h.setSessionCookie(c, user.ID, ttl)
	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.CookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.authService.UserByID(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	user, err := h.authService.UpdateProfile(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	if err := h.authService.ChangePassword(ctx, middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated successfully"})
}
