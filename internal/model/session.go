package model

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Errors returned by Session.CheckSeat.
var (
	ErrSessionClosed  = errors.New("session closed")
	ErrSoldOut        = errors.New("session sold out")
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrSeatTaken      = errors.New("seat already taken")
)

// Session is a scheduled screening of a movie in a room.  It is open for
// ticket sales until Close is called.
//
// Fields:
//
//	ID         – primary key identifier.
//	UserID     – company user that owns the session.
//	StartsAt   – when the screening begins (UTC).
//	MaxTickets – how many tickets may be sold; seats are numbered 1..MaxTickets.
//	Closed     – whether sales are closed.
//	MovieID    – movie being screened.
//	RoomID     – room the screening happens in.
//	Tickets    – tickets sold so far.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID         uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:varchar(36)" json:"user_id"`
	StartsAt   time.Time `bun:"starts_at,notnull" json:"starts_at" validate:"required"`
	MaxTickets int       `bun:"max_tickets,notnull" json:"max_tickets" validate:"gt=0"`
	Closed     bool      `bun:"closed,notnull,default:false" json:"closed"`
	MovieID    uuid.UUID `bun:"movie_id,notnull,type:varchar(36)" json:"movie_id" validate:"required"`
	Movie      *Movie    `bun:"rel:belongs-to,join:movie_id=id" json:"movie,omitempty"`
	RoomID     uuid.UUID `bun:"room_id,notnull,type:varchar(36)" json:"room_id" validate:"required"`
	Room       *Room     `bun:"rel:belongs-to,join:room_id=id" json:"room,omitempty"`
	Tickets    []*Ticket `bun:"rel:has-many,join:id=session_id" json:"-"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// NewSession builds an open session with a fresh identifier.
func NewSession(startsAt time.Time, maxTickets int, movie *Movie, room *Room) *Session {
	s := &Session{
		ID:         uuid.New(),
		StartsAt:   startsAt.UTC(),
		MaxTickets: maxTickets,
		Movie:      movie,
		Room:       room,
	}
	if movie != nil {
		s.MovieID = movie.ID
	}
	if room != nil {
		s.RoomID = room.ID
	}
	return s
}

// EndsAt returns the start time plus the movie duration.  Without a loaded
// movie the session is treated as instantaneous.
func (s *Session) EndsAt() time.Time {
	if s.Movie == nil {
		return s.StartsAt
	}
	return s.StartsAt.Add(s.Movie.Duration())
}

// Overlaps reports whether both sessions use the same room and their
// half-open [start, end) intervals intersect.
func (s *Session) Overlaps(other *Session) bool {
	if other == nil || s.RoomID != other.RoomID {
		return false
	}
	return s.StartsAt.Before(other.EndsAt()) && other.StartsAt.Before(s.EndsAt())
}

// GenerateTicket creates a ticket for the given seat and appends it to
// the session.  It does not check availability; see CheckSeat.
func (s *Session) GenerateTicket(seat int, halfPrice bool) *Ticket {
	t := &Ticket{
		ID:         uuid.New(),
		SeatNumber: seat,
		HalfPrice:  halfPrice,
		SessionID:  s.ID,
		Session:    s,
	}
	s.Tickets = append(s.Tickets, t)
	return t
}

// SoldSeats returns the seat numbers already sold, ascending.
func (s *Session) SoldSeats() []int {
	seats := make([]int, 0, len(s.Tickets))
	for _, t := range s.Tickets {
		seats = append(seats, t.SeatNumber)
	}
	sort.Ints(seats)
	return seats
}

// AvailableSeats returns every seat in 1..MaxTickets that has no ticket.
func (s *Session) AvailableSeats() []int {
	sold := make(map[int]struct{}, len(s.Tickets))
	for _, t := range s.Tickets {
		sold[t.SeatNumber] = struct{}{}
	}
	seats := make([]int, 0, s.MaxTickets)
	for n := 1; n <= s.MaxTickets; n++ {
		if _, ok := sold[n]; !ok {
			seats = append(seats, n)
		}
	}
	return seats
}

// AvailableTicketCount returns MaxTickets minus the tickets sold.
func (s *Session) AvailableTicketCount() int {
	return s.MaxTickets - len(s.Tickets)
}

// Close marks the session as closed for sales.
func (s *Session) Close() {
	s.Closed = true
}

// CheckSeat reports why seat cannot be sold, or nil if it can.
func (s *Session) CheckSeat(seat int) error {
	switch {
	case s.Closed:
		return ErrSessionClosed
	case s.AvailableTicketCount() <= 0:
		return ErrSoldOut
	case seat < 1 || seat > s.MaxTickets:
		return ErrSeatOutOfRange
	}
	for _, t := range s.Tickets {
		if t.SeatNumber == seat {
			return ErrSeatTaken
		}
	}
	return nil
}

// Update copies the editable fields of edited into s.  Tickets and the
// closed flag are left untouched.
func (s *Session) Update(edited *Session) {
	s.StartsAt = edited.StartsAt.UTC()
	s.MaxTickets = edited.MaxTickets
	s.MovieID = edited.MovieID
	s.Movie = edited.Movie
	s.RoomID = edited.RoomID
	s.Room = edited.Room
}
