package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/handler"
	"github.com/iliyamo/cinema-control/internal/middleware"
)

// RegisterCompany registers the back-office endpoints.  All routes require
// a valid JWT and the COMPANY role.
func RegisterCompany(e *echo.Echo, h *handler.CompanyHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COMPANY"),
	)

	// ---- Genres ----
	g.POST("/genres", h.CreateGenre)
	g.GET("/genres", h.ListGenres)
	g.GET("/genres/:id", h.GetGenre)
	g.PUT("/genres/:id", h.UpdateGenre)
	g.DELETE("/genres/:id", h.DeleteGenre)

	// ---- Movies ----
	g.POST("/movies", h.CreateMovie)
	g.GET("/movies", h.ListMovies)
	g.GET("/movies/:id", h.GetMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	// ---- Rooms ----
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/:id", h.GetRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	// ---- Sessions ----
	g.POST("/sessions", h.CreateSession)
	g.GET("/sessions", h.ListSessions)
	g.GET("/sessions/:id", h.GetSession)
	g.PUT("/sessions/:id", h.UpdateSession)
	g.DELETE("/sessions/:id", h.DeleteSession)
	g.POST("/sessions/:id/close", h.CloseSession)
}
