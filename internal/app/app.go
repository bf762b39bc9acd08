// Package app wires repositories, services and handlers into an HTTP
// server.
package app

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/config"
	"github.com/iliyamo/cinema-control/internal/handler"
	"github.com/iliyamo/cinema-control/internal/middleware"
	"github.com/iliyamo/cinema-control/internal/queue"
	"github.com/iliyamo/cinema-control/internal/repository"
	"github.com/iliyamo/cinema-control/internal/router"
	"github.com/iliyamo/cinema-control/internal/service"
	"github.com/iliyamo/cinema-control/internal/utils"
)

// Deps are the external resources the server runs on.  Redis and
// Publisher may be nil.
type Deps struct {
	DB        *bun.DB
	Redis     *redis.Client
	Publisher queue.Publisher
	Log       *zap.Logger
}

// New builds the Echo server for cfg.
func New(cfg config.Config, cache config.CacheConfig, rl config.RateLimitConfig, d Deps) *echo.Echo {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	var pub service.EventPublisher
	if d.Publisher != nil {
		pub = d.Publisher
	}

	uow := repository.NewUnitOfWork(d.DB)
	tenant := middleware.ContextTenant{}
	genres := repository.NewGenreRepo(d.DB)
	movies := repository.NewMovieRepo(d.DB)
	rooms := repository.NewRoomRepo(d.DB)
	sessions := repository.NewSessionRepo(d.DB)
	tickets := repository.NewTicketRepo(d.DB)

	genreSvc := service.NewGenreService(genres, uow, tenant, log.Named("genres"))
	movieSvc := service.NewMovieService(movies, genres, uow, tenant, log.Named("movies"))
	roomSvc := service.NewRoomService(rooms, uow, tenant, log.Named("rooms"))
	sessionSvc := service.NewSessionService(sessions, movies, rooms, uow, tenant, log.Named("sessions"))
	ticketSvc := service.NewTicketService(tickets, sessions, pub, utils.NewQRGenerator(cfg.QRSecret), uow, tenant, log.Named("tickets"))
	authSvc := service.NewAuthService(service.AuthConfig{
		JWTSecret:          cfg.Auth.JWTSecret,
		AccessTTLMin:       cfg.Auth.AccessTTLMin,
		RefreshTTLDays:     cfg.Auth.RefreshTTLDays,
		BcryptCost:         cfg.Auth.BcryptCost,
		PasswordMinLength:  cfg.Auth.PasswordMinLength,
		LockoutMaxFailures: cfg.Auth.LockoutMaxFailures,
		LockoutDuration:    cfg.Auth.LockoutDuration,
	}, repository.NewUserRepo(d.DB), repository.NewRoleRepo(d.DB), repository.NewTokenRepo(d.DB), uow, tenant, log.Named("auth"))

	return router.New(router.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		Health:    d.DB,
		Auth:      handler.NewAuthHandler(authSvc),
		Company:   handler.NewCompanyHandler(genreSvc, movieSvc, roomSvc, sessionSvc),
		Customer:  handler.NewCustomerHandler(sessionSvc, ticketSvc),
		Redis:     d.Redis,
		Cache:     cache,
		RateLimit: rl,
		Log:       log.Named("http"),
	})
}
