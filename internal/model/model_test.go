package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCopiesFields(t *testing.T) {
	g := NewGenre("Drama")
	g.Update(&Genre{Description: "Comedy"})
	assert.Equal(t, "Comedy", g.Description)

	horror := NewGenre("Horror")
	m := NewMovie("Alien", 117, false, g)
	m.Update(NewMovie("Aliens", 137, true, horror))
	assert.Equal(t, "Aliens", m.Title)
	assert.Equal(t, 137, m.DurationMinutes)
	assert.True(t, m.Release)
	assert.Equal(t, horror.ID, m.GenreID)
	assert.Equal(t, 137*time.Minute, m.Duration())

	r := NewRoom(1, 30)
	r.Update(&Room{Number: 2, Capacity: 50})
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, 50, r.Capacity)

	ticket := &Ticket{SeatNumber: 1}
	ticket.Update(&Ticket{SeatNumber: 5, HalfPrice: true})
	assert.Equal(t, 5, ticket.SeatNumber)
	assert.True(t, ticket.HalfPrice)
}

func TestUserType(t *testing.T) {
	assert.Equal(t, "Company", UserTypeCompany.DisplayName())
	assert.Equal(t, "Customer", UserTypeCustomer.DisplayName())
	assert.True(t, UserTypeCustomer.Valid())
	assert.False(t, UserType("ADMIN").Valid())
	assert.Equal(t, "ADMIN", UserType("ADMIN").DisplayName())
}

func TestUserLockedOut(t *testing.T) {
	now := time.Now()
	u := &User{}
	assert.False(t, u.LockedOut(now))

	end := now.Add(time.Minute)
	u.LockoutEnd = &end
	assert.True(t, u.LockedOut(now))
	assert.False(t, u.LockedOut(end))
}
