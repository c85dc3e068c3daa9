package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookhaven-api/internal/config"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/service"
	"bookhaven-api/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*Server, repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	sessions := session.NewManager()
	cfg := config.Session{TTL: time.Hour, RememberTTL: 24 * time.Hour, CookieName: "bookhaven_session"}

	srv := NewServer(
		cfg,
		zerolog.Nop(),
		store,
		sessions,
		service.NewAuthService(store),
		service.NewCatalogService(store),
		service.NewCartService(store),
		service.NewCheckoutService(store),
		service.NewNewsletterService(store),
	)
	return srv, store
}

func seedUser(t *testing.T, store repository.Store, username, password string, admin bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:  username,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		IsAdmin:   admin,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedBook(t *testing.T, store repository.Store, title string, price float64) *model.Book {
	t.Helper()
	ctx := context.Background()
	category := &model.Category{Name: "Fiction " + title, Icon: "icon"}
	require.NoError(t, store.Categories().Create(ctx, category))
	book := &model.Book{Title: title, Author: "Author", Price: price, Pages: 100, CategoryID: category.ID, InStock: true}
	require.NoError(t, store.Books().Create(ctx, book))
	return book
}

func do(srv *Server, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, email, password string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := do(srv, http.MethodPost, "/api/auth/login", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "bookhaven_session" {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterSetsSession(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"username":"reader","password":"password123","confirmPassword":"password123",
		"firstName":"Rea","lastName":"Der","email":"reader@example.com","terms":true}`
	rec := do(srv, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password", "response must not leak the hash")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "bookhaven_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	me := do(srv, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"reader"`)
}

func TestAuthRequiredRoutes(t *testing.T) {
	srv, store := newTestServer(t)
	seedUser(t, store, "reader", "password123", false)

	rec := do(srv, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a regular user cannot reach admin routes
	cookie := login(t, srv, "reader@example.com", "password123")
	rec = do(srv, http.MethodPost, "/api/categories", `{"name":"Poetry","icon":"pen"}`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	srv, store := newTestServer(t)
	seedUser(t, store, "reader", "password123", false)
	cookie := login(t, srv, "reader@example.com", "password123")

	rec := do(srv, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(srv, http.MethodGet, "/api/auth/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPurchaseFlow(t *testing.T) {
	srv, store := newTestServer(t)
	seedUser(t, store, "buyer", "password123", false)
	book := seedBook(t, store, "Dune", 20.00)
	cookie := login(t, srv, "buyer@example.com", "password123")

	rec := do(srv, http.MethodPost, "/api/cart", fmt.Sprintf(`{"bookId":%d,"quantity":2}`, book.ID), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(srv, http.MethodPost, "/api/checkout", `{"shippingAddress":"1 Main St","paymentMethod":"card"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		OrderID int `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)

	rec = do(srv, http.MethodGet, fmt.Sprintf("/api/orders/%d", resp.OrderID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	// 40.00 subtotal clears the free-shipping line
	assert.Contains(t, rec.Body.String(), `"totalAmount":40`)

	rec = do(srv, http.MethodGet, "/api/cart", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestRelatedRouteDoesNotShadowBookByID(t *testing.T) {
	srv, store := newTestServer(t)
	book := seedBook(t, store, "Dune", 20.00)

	rec := do(srv, http.MethodGet, fmt.Sprintf("/api/books/%d", book.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)

	rec = do(srv, http.MethodGet, fmt.Sprintf("/api/books/related/%d", book.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewsletterSubscribe(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(srv, http.MethodPost, "/api/newsletter/subscribe", `{"email":"news@example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(srv, http.MethodPost, "/api/newsletter/subscribe", `{"email":"news@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
