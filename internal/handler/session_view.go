package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/service"
)

type ticketView struct {
	ID         uuid.UUID `json:"id"`
	SeatNumber int       `json:"seat_number"`
	HalfPrice  bool      `json:"half_price"`
	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// sessionView is the JSON form of a session.  Tickets is only filled for
// the owning company.
type sessionView struct {
	ID               uuid.UUID    `json:"id"`
	StartsAt         time.Time    `json:"starts_at"`
	EndsAt           time.Time    `json:"ends_at"`
	MaxTickets       int          `json:"max_tickets"`
	Closed           bool         `json:"closed"`
	Movie            *model.Movie `json:"movie,omitempty"`
	Room             *model.Room  `json:"room,omitempty"`
	AvailableTickets int          `json:"available_tickets"`
	AvailableSeats   *[]int       `json:"available_seats,omitempty"`
	SoldSeats        []int        `json:"sold_seats,omitempty"`
	Tickets          []ticketView `json:"tickets,omitempty"`
}

func newSessionView(s *model.Session) sessionView {
	return sessionView{
		ID:               s.ID,
		StartsAt:         s.StartsAt,
		EndsAt:           s.EndsAt(),
		MaxTickets:       s.MaxTickets,
		Closed:           s.Closed,
		Movie:            s.Movie,
		Room:             s.Room,
		AvailableTickets: s.AvailableTicketCount(),
	}
}

// detailed adds the free seats to the view.  A sold-out session still
// renders an empty array.
func (v sessionView) detailed(s *model.Session) sessionView {
	seats := s.AvailableSeats()
	if seats == nil {
		seats = []int{}
	}
	v.AvailableSeats = &seats
	return v
}

// withTickets adds the sold tickets and seats to the view.
func (v sessionView) withTickets(s *model.Session) sessionView {
	v.SoldSeats = s.SoldSeats()
	v.Tickets = make([]ticketView, 0, len(s.Tickets))
	for _, t := range s.Tickets {
		v.Tickets = append(v.Tickets, ticketView{ID: t.ID, SeatNumber: t.SeatNumber, HalfPrice: t.HalfPrice, UserID: t.UserID, CreatedAt: t.CreatedAt})
	}
	return v
}

func sessionViews(ss []*model.Session) []sessionView {
	out := make([]sessionView, 0, len(ss))
	for _, s := range ss {
		out = append(out, newSessionView(s))
	}
	return out
}

type catalogEntry struct {
	Movie    *model.Movie  `json:"movie"`
	Sessions []sessionView `json:"sessions"`
}

func catalogView(groups []service.MovieSessions) []catalogEntry {
	out := make([]catalogEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, catalogEntry{Movie: g.Movie, Sessions: sessionViews(g.Sessions)})
	}
	return out
}
