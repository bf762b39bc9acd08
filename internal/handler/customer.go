package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/service"
)

// CustomerHandler serves the catalog and the customer's own tickets.
type CustomerHandler struct {
	Sessions *service.SessionService
	Tickets  *service.TicketService
}

func NewCustomerHandler(sessions *service.SessionService, tickets *service.TicketService) *CustomerHandler {
	if sessions == nil || tickets == nil {
		panic("nil service passed to NewCustomerHandler")
	}
	return &CustomerHandler{Sessions: sessions, Tickets: tickets}
}

type buyReq struct {
	SeatNumber int  `json:"seat_number"`
	HalfPrice  bool `json:"half_price"`
}

// Catalog handles GET /v1/catalog/sessions: open sessions grouped by movie.
// The optional ?title= query narrows the movies by title.
func (h *CustomerHandler) Catalog(c echo.Context) error {
	groups, err := h.Sessions.ListOpenGroupedByMovie(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": catalogView(groups)})
}

// CatalogSession handles GET /v1/catalog/sessions/:id with the seats
// still free.
func (h *CustomerHandler) CatalogSession(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	s, err := h.Sessions.GetOpen(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newSessionView(s).detailed(s))
}

// BuyTicket handles POST /v1/catalog/sessions/:id/tickets.
func (h *CustomerHandler) BuyTicket(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req buyReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	t, err := h.Tickets.Buy(c.Request().Context(), id, req.SeatNumber, req.HalfPrice)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTickets handles GET /v1/tickets.
func (h *CustomerHandler) ListTickets(c echo.Context) error {
	ts, err := h.Tickets.ListMine(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ts})
}

// GetTicket handles GET /v1/tickets/:id.
func (h *CustomerHandler) GetTicket(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	t, err := h.Tickets.GetMine(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// TicketQR handles GET /v1/tickets/:id/qr and returns a PNG.
func (h *CustomerHandler) TicketQR(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	png, err := h.Tickets.QRCode(c.Request().Context(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
