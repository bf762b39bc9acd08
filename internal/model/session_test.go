package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, start time.Time, maxTickets int) *Session {
	t.Helper()
	genre := NewGenre("Drama")
	movie := NewMovie("Interstellar", 117, false, genre)
	room := NewRoom(1, 30)
	return NewSession(start, maxTickets, movie, room)
}

func TestSessionEndsAt(t *testing.T) {
	start := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	s := newTestSession(t, start, 10)

	assert.Equal(t, time.Date(2024, 3, 10, 16, 27, 0, 0, time.UTC), s.EndsAt())
}

func TestSessionOverlaps(t *testing.T) {
	start := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	existing := newTestSession(t, start, 10)

	t.Run("starts before previous ends", func(t *testing.T) {
		other := NewSession(start.Add(116*time.Minute), 10, existing.Movie, existing.Room)
		assert.True(t, other.Overlaps(existing))
		assert.True(t, existing.Overlaps(other))
	})

	t.Run("starts exactly when previous ends", func(t *testing.T) {
		other := NewSession(existing.EndsAt(), 10, existing.Movie, existing.Room)
		assert.False(t, other.Overlaps(existing))
	})

	t.Run("different room", func(t *testing.T) {
		other := NewSession(start, 10, existing.Movie, NewRoom(2, 30))
		assert.False(t, other.Overlaps(existing))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, existing.Overlaps(nil))
	})
}

func TestSessionGenerateTicket(t *testing.T) {
	s := newTestSession(t, time.Now(), 3)

	ticket := s.GenerateTicket(2, true)

	require.Len(t, s.Tickets, 1)
	assert.Same(t, ticket, s.Tickets[0])
	assert.Same(t, s, ticket.Session)
	assert.Equal(t, s.ID, ticket.SessionID)
	assert.Equal(t, 2, ticket.SeatNumber)
	assert.True(t, ticket.HalfPrice)
}

func TestSessionAvailability(t *testing.T) {
	s := newTestSession(t, time.Now(), 5)
	s.GenerateTicket(4, false)
	s.GenerateTicket(2, false)

	assert.Equal(t, []int{1, 3, 5}, s.AvailableSeats())
	assert.Equal(t, []int{2, 4}, s.SoldSeats())
	assert.Equal(t, 3, s.AvailableTicketCount())
}

func TestSessionCheckSeat(t *testing.T) {
	s := newTestSession(t, time.Now(), 2)
	s.GenerateTicket(1, false)

	assert.NoError(t, s.CheckSeat(2))
	assert.ErrorIs(t, s.CheckSeat(1), ErrSeatTaken)
	assert.ErrorIs(t, s.CheckSeat(0), ErrSeatOutOfRange)
	assert.ErrorIs(t, s.CheckSeat(3), ErrSeatOutOfRange)

	s.GenerateTicket(2, false)
	assert.ErrorIs(t, s.CheckSeat(2), ErrSoldOut)

	s.Close()
	assert.ErrorIs(t, s.CheckSeat(2), ErrSessionClosed)
}

func TestSessionUpdate(t *testing.T) {
	s := newTestSession(t, time.Now(), 10)
	s.GenerateTicket(1, false)
	s.Close()
	edited := newTestSession(t, time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC), 20)

	s.Update(edited)

	assert.Equal(t, edited.StartsAt, s.StartsAt)
	assert.Equal(t, 20, s.MaxTickets)
	assert.Equal(t, edited.MovieID, s.MovieID)
	assert.Equal(t, edited.RoomID, s.RoomID)
	assert.Len(t, s.Tickets, 1)
	assert.True(t, s.Closed)
}
