package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
)

type genreReq struct {
	Description string `json:"description"`
}

func (r genreReq) model() *model.Genre {
	return &model.Genre{Description: strings.TrimSpace(r.Description)}
}

// CreateGenre handles POST /v1/genres.
func (h *CompanyHandler) CreateGenre(c echo.Context) error {
	var req genreReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	g, err := h.Genres.Create(c.Request().Context(), req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// UpdateGenre handles PUT /v1/genres/:id.
func (h *CompanyHandler) UpdateGenre(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req genreReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	g, err := h.Genres.Update(c.Request().Context(), id, req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// DeleteGenre handles DELETE /v1/genres/:id.
func (h *CompanyHandler) DeleteGenre(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.Genres.Delete(c.Request().Context(), id); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetGenre handles GET /v1/genres/:id.
func (h *CompanyHandler) GetGenre(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// ListGenres handles GET /v1/genres.
func (h *CompanyHandler) ListGenres(c echo.Context) error {
	gs, err := h.Genres.List(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": gs})
}
