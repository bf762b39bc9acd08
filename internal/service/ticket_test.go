package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/queue"
	"github.com/iliyamo/cinema-control/internal/repository"
	"github.com/iliyamo/cinema-control/internal/utils"
)

func openSession(maxTickets int) *model.Session {
	movie := &model.Movie{ID: uuid.New(), Title: "Interstellar", DurationMinutes: 117}
	room := &model.Room{ID: uuid.New(), Number: 4, Capacity: 30}
	return model.NewSession(time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), maxTickets, movie, room)
}

func TestTicketBuy(t *testing.T) {
	ctx := context.Background()
	buyer := uuid.New()

	t.Run("success publishes event", func(t *testing.T) {
		sess := openSession(3)
		sessions, tickets, pub := new(mockSessions), new(mockTickets), new(mockPublisher)
		uow := okUOW()
		sessions.On("GetByID", ctx, sess.ID).Return(sess, nil)
		tickets.On("Create", inTx, mock.AnythingOfType("*model.Ticket")).Return(nil)
		pub.On("PublishTicketPurchased", ctx, mock.MatchedBy(func(ev queue.TicketPurchasedEvent) bool {
			return ev.SeatNumber == 2 && ev.MovieTitle == "Interstellar" && ev.RoomNumber == 4 &&
				ev.UserID == buyer.String() && ev.StartsAt == "2024-03-10T14:30:00Z"
		})).Return(nil)
		svc := NewTicketService(tickets, sessions, pub, nil, uow, fixedTenant{buyer}, zaptest.NewLogger(t))

		ticket, err := svc.Buy(ctx, sess.ID, 2, true)
		require.NoError(t, err)
		assert.Equal(t, buyer, ticket.UserID)
		assert.True(t, ticket.HalfPrice)
		assert.Equal(t, sess.ID, ticket.SessionID)
		assert.Equal(t, []int{1, 3}, sess.AvailableSeats())
		pub.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("publish failure is tolerated", func(t *testing.T) {
		sess := openSession(3)
		sessions, tickets, pub := new(mockSessions), new(mockTickets), new(mockPublisher)
		sessions.On("GetByID", ctx, sess.ID).Return(sess, nil)
		tickets.On("Create", inTx, mock.Anything).Return(nil)
		pub.On("PublishTicketPurchased", ctx, mock.Anything).Return(errors.New("broker down"))
		svc := NewTicketService(tickets, sessions, pub, nil, okUOW(), fixedTenant{buyer}, zaptest.NewLogger(t))

		_, err := svc.Buy(ctx, sess.ID, 1, false)
		assert.NoError(t, err)
	})

	cases := []struct {
		name    string
		prepare func(s *model.Session)
		seat    int
		want    error
	}{
		{"seat taken", func(s *model.Session) { s.GenerateTicket(1, false) }, 1, model.ErrSeatTaken},
		{"seat zero", func(*model.Session) {}, 0, model.ErrSeatOutOfRange},
		{"seat above limit", func(*model.Session) {}, 3, model.ErrSeatOutOfRange},
		{"sold out", func(s *model.Session) { s.GenerateTicket(1, false); s.GenerateTicket(2, false) }, 1, model.ErrSoldOut},
		{"closed", func(s *model.Session) { s.Close() }, 1, model.ErrSessionClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := openSession(2)
			tc.prepare(sess)
			sessions, tickets := new(mockSessions), new(mockTickets)
			sessions.On("GetByID", ctx, sess.ID).Return(sess, nil)
			uow := new(mockUOW)
			svc := NewTicketService(tickets, sessions, nil, nil, uow, fixedTenant{buyer}, zaptest.NewLogger(t))

			_, err := svc.Buy(ctx, sess.ID, tc.seat, false)
			assert.ErrorIs(t, err, tc.want)
			tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Begin", mock.Anything)
		})
	}

	t.Run("seat taken by a concurrent buyer", func(t *testing.T) {
		sess := openSession(3)
		sessions, tickets, pub := new(mockSessions), new(mockTickets), new(mockPublisher)
		uow := okUOW()
		uow.On("Rollback", inTx).Return(nil)
		sessions.On("GetByID", ctx, sess.ID).Return(sess, nil)
		tickets.On("Create", inTx, mock.Anything).Return(repository.ErrConflict)
		svc := NewTicketService(tickets, sessions, pub, nil, uow, fixedTenant{buyer}, zaptest.NewLogger(t))

		_, err := svc.Buy(ctx, sess.ID, 1, false)
		assert.ErrorIs(t, err, model.ErrSeatTaken)
		uow.AssertNumberOfCalls(t, "Rollback", 1)
		pub.AssertNotCalled(t, "PublishTicketPurchased", mock.Anything, mock.Anything)
	})

	t.Run("unknown session", func(t *testing.T) {
		sessions := new(mockSessions)
		id := uuid.New()
		sessions.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound)
		svc := NewTicketService(new(mockTickets), sessions, nil, nil, new(mockUOW), fixedTenant{buyer}, zaptest.NewLogger(t))

		_, err := svc.Buy(ctx, id, 1, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTicketGetMineAndQR(t *testing.T) {
	ctx := context.Background()
	buyer := uuid.New()
	sess := openSession(5)
	ticket := sess.GenerateTicket(3, false)
	ticket.UserID = buyer

	tickets, qr := new(mockTickets), new(mockQR)
	tickets.On("GetByID", ctx, ticket.ID).Return(ticket, nil)
	qr.On("PNG", utils.TicketPayload{
		TicketID:   ticket.ID.String(),
		SessionID:  sess.ID.String(),
		UserID:     buyer.String(),
		SeatNumber: 3,
		StartsAt:   "2024-03-10T14:30:00Z",
	}).Return([]byte("png"), nil)

	svc := NewTicketService(tickets, new(mockSessions), nil, qr, new(mockUOW), fixedTenant{buyer}, zaptest.NewLogger(t))
	png, err := svc.QRCode(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	stranger := NewTicketService(tickets, new(mockSessions), nil, qr, new(mockUOW), fixedTenant{uuid.New()}, zaptest.NewLogger(t))
	_, err = stranger.GetMine(ctx, ticket.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = stranger.QRCode(ctx, ticket.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	tickets.On("ListByUser", ctx, buyer).Return([]*model.Ticket{ticket}, nil)
	list, err := svc.ListMine(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
