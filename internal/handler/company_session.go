package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
)

type sessionReq struct {
	StartsAt   time.Time `json:"starts_at"`
	MaxTickets int       `json:"max_tickets"`
	MovieID    uuid.UUID `json:"movie_id"`
	RoomID     uuid.UUID `json:"room_id"`
}

func (r sessionReq) model() *model.Session {
	return &model.Session{StartsAt: r.StartsAt.UTC(), MaxTickets: r.MaxTickets, MovieID: r.MovieID, RoomID: r.RoomID}
}

// CreateSession handles POST /v1/sessions.  The room must seat max_tickets
// and be free for the whole running time of the movie.
func (h *CompanyHandler) CreateSession(c echo.Context) error {
	var req sessionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	s, err := h.Sessions.Create(c.Request().Context(), req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, newSessionView(s))
}

// UpdateSession handles PUT /v1/sessions/:id.
func (h *CompanyHandler) UpdateSession(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req sessionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	s, err := h.Sessions.Update(c.Request().Context(), id, req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}

// DeleteSession handles DELETE /v1/sessions/:id.  Sold tickets are
// removed with the session.
func (h *CompanyHandler) DeleteSession(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSession handles GET /v1/sessions/:id with the sold tickets and the
// seats still free.
func (h *CompanyHandler) GetSession(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	s, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newSessionView(s).detailed(s).withTickets(s))
}

func (h *CompanyHandler) ListSessions(c echo.Context) error {
	ss, err := h.Sessions.List(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sessionViews(ss)})
}

// CloseSession handles POST /v1/sessions/:id/close.
func (h *CompanyHandler) CloseSession(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	s, err := h.Sessions.Close(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}
