package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/handler"
	"github.com/iliyamo/cinema-control/internal/middleware"
)

// RegisterCustomer registers customer endpoints under /v1.  All routes
// require a valid JWT and the CUSTOMER role.  The catalog listing goes
// through cache, which may serve it slightly stale.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.GET("/catalog/sessions", h.Catalog, cache)
	g.GET("/catalog/sessions/:id", h.CatalogSession)
	g.POST("/catalog/sessions/:id/tickets", h.BuyTicket)

	g.GET("/tickets", h.ListTickets)
	g.GET("/tickets/:id", h.GetTicket)
	g.GET("/tickets/:id/qr", h.TicketQR)
}
