package handler

import (
	"github.com/iliyamo/cinema-control/internal/service"
)

// CompanyHandler serves the back-office routes.  Every record it touches
// belongs to the authenticated company.
type CompanyHandler struct {
	Genres   *service.GenreService
	Movies   *service.MovieService
	Rooms    *service.RoomService
	Sessions *service.SessionService
}

// NewCompanyHandler panics if any service is nil.
func NewCompanyHandler(genres *service.GenreService, movies *service.MovieService, rooms *service.RoomService, sessions *service.SessionService) *CompanyHandler {
	if genres == nil || movies == nil || rooms == nil || sessions == nil {
		panic("nil service passed to NewCompanyHandler")
	}
	return &CompanyHandler{Genres: genres, Movies: movies, Rooms: rooms, Sessions: sessions}
}
