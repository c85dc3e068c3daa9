package middleware

import (
	"net/http"

	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextToken  = "session_token"
)

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c echo.Context) int {
	id, _ := c.Get(ContextUserID).(int)
	return id
}

// RequireAuth rejects requests without a live session and binds the
// session's user id into the request context.
func RequireAuth(sessions *session.Manager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			userID, ok := sessions.Resolve(cookie.Value)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			c.Set(ContextUserID, userID)
			c.Set(ContextToken, cookie.Value)
			return next(c)
		}
	}
}

// RequireAdmin additionally checks the isAdmin flag on the session's user.
func RequireAdmin(sessions *session.Manager, store repository.Store, cookieName string) echo.MiddlewareFunc {
	requireAuth := RequireAuth(sessions, cookieName)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			user, err := store.Users().ByID(c.Request().Context(), UserID(c))
			if err != nil {
				return err
			}
			if user == nil || !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "not authorized")
			}
			return next(c)
		})
	}
}
