package server

import (
	"net/http"

	"bookhaven-api/internal/config"
	"bookhaven-api/internal/handler"
	appmw "bookhaven-api/internal/middleware"
	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/service"
	"bookhaven-api/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo              *echo.Echo
	authHandler       *handler.AuthHandler
	bookHandler       *handler.BookHandler
	categoryHandler   *handler.CategoryHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	newsletterHandler *handler.NewsletterHandler

	requireAuth  echo.MiddlewareFunc
	requireAdmin echo.MiddlewareFunc
}

func NewServer(
	cfg config.Session,
	logger zerolog.Logger,
	store repository.Store,
	sessions *session.Manager,
	authService service.AuthService,
	catalogService service.CatalogService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	newsletterService service.NewsletterService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := logger.Info()
			if v.Error != nil {
				evt = logger.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:              e,
		authHandler:       handler.NewAuthHandler(authService, sessions, cfg),
		bookHandler:       handler.NewBookHandler(catalogService),
		categoryHandler:   handler.NewCategoryHandler(catalogService),
		cartHandler:       handler.NewCartHandler(cartService),
		orderHandler:      handler.NewOrderHandler(checkoutService, authService),
		newsletterHandler: handler.NewNewsletterHandler(newsletterService),
		requireAuth:       appmw.RequireAuth(sessions, cfg.CookieName),
		requireAdmin:      appmw.RequireAdmin(sessions, store, cfg.CookieName),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Me, s.requireAuth)
	auth.PATCH("/profile", s.authHandler.UpdateProfile, s.requireAuth)
	auth.PATCH("/password", s.authHandler.ChangePassword, s.requireAuth)

	// -------- catalog --------
	api.GET("/categories", s.categoryHandler.List)
	api.POST("/categories", s.categoryHandler.Create, s.requireAdmin)
	api.PATCH("/categories/:id", s.categoryHandler.Update, s.requireAdmin)
	api.DELETE("/categories/:id", s.categoryHandler.Delete, s.requireAdmin)

	api.GET("/books", s.bookHandler.List)
	api.GET("/books/admin", s.bookHandler.ListAdmin, s.requireAdmin)
	api.GET("/books/related/:id", s.bookHandler.Related)
	api.GET("/books/:id", s.bookHandler.Get)
	api.POST("/books", s.bookHandler.Create, s.requireAdmin)
	api.PATCH("/books/:id", s.bookHandler.Update, s.requireAdmin)
	api.DELETE("/books/:id", s.bookHandler.Delete, s.requireAdmin)

	// -------- cart / checkout --------
	api.GET("/cart", s.cartHandler.List, s.requireAuth)
	api.POST("/cart", s.cartHandler.Add, s.requireAuth)
	api.POST("/cart/merge", s.cartHandler.Merge, s.requireAuth)
	api.PATCH("/cart/:bookId", s.cartHandler.Update, s.requireAuth)
	api.DELETE("/cart/:bookId", s.cartHandler.Remove, s.requireAuth)
	api.DELETE("/cart", s.cartHandler.Clear, s.requireAuth)

	api.POST("/checkout", s.orderHandler.Checkout, s.requireAuth)
	api.GET("/orders", s.orderHandler.List, s.requireAuth)
	api.GET("/orders/:id", s.orderHandler.Get, s.requireAuth)
	api.PATCH("/orders/:id/status", s.orderHandler.UpdateStatus, s.requireAdmin)

	// -------- newsletter --------
	api.POST("/newsletter/subscribe", s.newsletterHandler.Subscribe)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
