package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
)

type movieReq struct {
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Release         bool      `json:"release"`
	GenreID         uuid.UUID `json:"genre_id"`
}

func (r movieReq) model() *model.Movie {
	return &model.Movie{
		Title:           strings.TrimSpace(r.Title),
		DurationMinutes: r.DurationMinutes,
		Release:         r.Release,
		GenreID:         r.GenreID,
	}
}

// CreateMovie handles POST /v1/movies.  The genre must belong to the
// caller.
func (h *CompanyHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := h.Movies.Create(c.Request().Context(), req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/movies/:id.
func (h *CompanyHandler) UpdateMovie(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req movieReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := h.Movies.Update(c.Request().Context(), id, req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/movies/:id.
func (h *CompanyHandler) DeleteMovie(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetMovie handles GET /v1/movies/:id.
func (h *CompanyHandler) GetMovie(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// ListMovies handles GET /v1/movies.
func (h *CompanyHandler) ListMovies(c echo.Context) error {
	ms, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ms})
}
