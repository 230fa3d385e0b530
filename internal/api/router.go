package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tradewell/backoffice/internal/api/handler"
	"github.com/tradewell/backoffice/internal/api/middleware"
	"github.com/tradewell/backoffice/internal/core/service"
	"github.com/tradewell/backoffice/internal/infrastructure/config"
	"github.com/tradewell/backoffice/internal/infrastructure/crypto"
	mongodb "github.com/tradewell/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/tradewell/backoffice/internal/infrastructure/db/redis"
	"github.com/tradewell/backoffice/internal/infrastructure/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	hasher := crypto.NewBcryptHasher()
	sessions := session.NewRegistry()
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxFailures, cfg.Login.FailureWindow)

	registration := service.NewRegistrationService(accountRepo, hasher, log)
	accounts := service.NewAccountService(accountRepo, hasher, log)
	access := service.NewAccessService(accountRepo, hasher, sessions, throttle, cfg.JWTSecret, cfg.SessionTTL, log)

	e.Use(middleware.Session(access))

	accessHandler := handler.NewAccessHandler(registration, access, accounts)
	accountHandler := handler.NewAccountHandler(accounts)

	// Route classes: everything not explicitly public requires a session, and
	// account management additionally requires the ADMIN role.
	public := middleware.Authorize(service.RoutePublic)
	authenticated := middleware.Authorize(service.RouteAuthenticated)
	admin := middleware.Authorize(service.RouteAdmin)

	// --- Access routes ---
	e.GET("/register", accessHandler.RegisterForm, public)
	e.POST("/register", accessHandler.Register, public)
	e.GET("/login", accessHandler.LoginForm, public)
	e.POST("/login", accessHandler.Login, public)
	e.POST("/logout", accessHandler.Logout, authenticated)
	e.GET("/", accessHandler.Home, authenticated)
	e.GET("/profile", accessHandler.Profile, authenticated)

	// --- Account management (ADMIN only) ---
	adminGroup := e.Group("/admin", admin)
	adminGroup.GET("/accounts", accountHandler.List)
	adminGroup.POST("/accounts", accountHandler.Create)
	adminGroup.GET("/accounts/:id/edit", accountHandler.EditForm)
	adminGroup.POST("/accounts/:id", accountHandler.Update)
	adminGroup.POST("/accounts/:id/delete", accountHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
