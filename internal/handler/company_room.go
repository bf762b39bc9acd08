package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
)

type roomReq struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

func (r roomReq) model() *model.Room {
	return &model.Room{Number: r.Number, Capacity: r.Capacity}
}

// CreateRoom handles POST /v1/rooms.
func (h *CompanyHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	r, err := h.Rooms.Create(c.Request().Context(), req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// UpdateRoom handles PUT /v1/rooms/:id.
func (h *CompanyHandler) UpdateRoom(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req roomReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	r, err := h.Rooms.Update(c.Request().Context(), id, req.model())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// DeleteRoom handles DELETE /v1/rooms/:id.
func (h *CompanyHandler) DeleteRoom(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompanyHandler) GetRoom(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	r, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *CompanyHandler) ListRooms(c echo.Context) error {
	rs, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rs})
}
