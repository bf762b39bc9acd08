// Package router registers the HTTP routes and the middleware chain.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/config"
	"github.com/iliyamo/cinema-control/internal/handler"
	"github.com/iliyamo/cinema-control/internal/middleware"
)

// Options carries the handlers and the settings of the Redis backed
// middleware.  A nil Redis client disables caching and rate limiting.
type Options struct {
	JWTSecret string
	Health    handler.Pinger
	Auth      *handler.AuthHandler
	Company   *handler.CompanyHandler
	Customer  *handler.CustomerHandler

	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Log       *zap.Logger
}

// New returns an Echo instance with every route registered.
func New(o Options) *echo.Echo {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(o.Log))
	e.Use(echomw.Recover())

	RegisterRoutes(e, o.Health)
	RegisterAuth(e, o.Auth, o.JWTSecret, o.RateLimit, o.Redis, o.Log)
	RegisterCompany(e, o.Company, o.JWTSecret)
	RegisterCustomer(e, o.Customer, o.JWTSecret, middleware.NewRedisCache(o.Cache, o.Redis, o.Log))
	return e
}

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the token endpoints under /v1/auth and the
// authenticated /v1/me.  The token endpoints are rate limited per client.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) {
	g := e.Group("/v1/auth", middleware.NewTokenBucket(rl, rdb, log))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COMPANY", "CUSTOMER"),
	)
}
