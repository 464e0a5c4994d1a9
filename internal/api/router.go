package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/inkpress/publishing-core/internal/api/handler"
	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/notify"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// RouterOptions collects the router's dependencies.
type RouterOptions struct {
	Store        *store.Store
	Notifier     *notify.Center
	JWTSecret    string
	TokenTTL     time.Duration
	HealthChecks map[string]handler.HealthCheck
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Ownership and permission decisions live in the store: route-level
// middleware only establishes identity.
func NewRouter(opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("publishing"))

	auth := middleware.Auth(opts.JWTSecret)
	optionalAuth := middleware.OptionalAuth(opts.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(opts.Store, opts.JWTSecret, opts.TokenTTL)
	articleHandler := handler.NewArticleHandler(opts.Store)
	commentHandler := handler.NewCommentHandler(opts.Store)
	tagHandler := handler.NewTagHandler(opts.Store)
	adminHandler := handler.NewAdminHandler(opts.Store)
	healthHandler := handler.NewHealthHandler(opts.HealthChecks)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)
	e.GET("/auth/me", authHandler.Me, auth)

	// --- Articles ---
	e.GET("/articles", articleHandler.List)
	e.GET("/articles/:id", articleHandler.Get)
	e.POST("/articles", articleHandler.Create, auth)
	e.PUT("/articles/:id", articleHandler.Update, auth)
	e.DELETE("/articles/:id", articleHandler.Delete, auth)
	e.POST("/articles/:id/views", articleHandler.View, optionalAuth)
	e.POST("/articles/:id/likes", articleHandler.Like, optionalAuth)

	// --- Comments ---
	e.GET("/articles/:id/comments", commentHandler.ListByArticle)
	e.POST("/articles/:id/comments", commentHandler.Create, auth)
	e.PUT("/comments/:commentID", commentHandler.Update, auth)
	e.DELETE("/comments/:commentID", commentHandler.Delete, auth)

	// --- Tags ---
	e.GET("/tags", tagHandler.List)
	e.POST("/tags", tagHandler.Create, auth)
	e.DELETE("/tags/:id", tagHandler.Delete, auth)

	// --- Profile and administration ---
	e.PUT("/profile", adminHandler.UpdateProfile, auth)
	e.GET("/admin/users", adminHandler.ListUsers, auth)
	e.PUT("/admin/users/:id/role", adminHandler.UpdateUserRole, auth)
	e.DELETE("/admin/users/:id", adminHandler.DeleteUser, auth)
	e.GET("/admin/roles", adminHandler.ListRoles, auth)
	e.POST("/admin/roles", adminHandler.DefineRole, auth)
	e.DELETE("/admin/roles/:role", adminHandler.DeleteRole, auth)

	// --- Notifications ---
	if opts.Notifier != nil {
		notificationHandler := handler.NewNotificationHandler(opts.Notifier)
		e.GET("/notifications", notificationHandler.List)
	}

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
