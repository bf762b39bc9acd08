package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/queue"
	"github.com/iliyamo/cinema-control/internal/repository"
	"github.com/iliyamo/cinema-control/internal/utils"
)

// QRRenderer renders a ticket payload as a PNG image.
type QRRenderer interface {
	PNG(p utils.TicketPayload) ([]byte, error)
}

// TicketService sells tickets to the current customer.
type TicketService struct {
	base
	tickets   TicketRepository
	sessions  SessionRepository
	publisher EventPublisher
	qr        QRRenderer
}

func NewTicketService(tickets TicketRepository, sessions SessionRepository, publisher EventPublisher, qr QRRenderer, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *TicketService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &TicketService{base: newBase(uow, tenant, log), tickets: tickets, sessions: sessions, publisher: publisher, qr: qr}
}

// Buy sells seat of the session to the current user.  The session must be
// open, not sold out and the seat must be in range and free.  A purchase
// event is published after the ticket commits; publish failures are only
// logged.
func (s *TicketService) Buy(ctx context.Context, sessionID uuid.UUID, seat int, halfPrice bool) (*model.Ticket, error) {
	buyer := s.tenant.UserID(ctx)
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, s.lookup("ticket buy", err)
	}
	if err := sess.CheckSeat(seat); err != nil {
		return nil, err
	}
	ticket := sess.GenerateTicket(seat, halfPrice)
	ticket.UserID = buyer
	err = s.write(ctx, "ticket buy", func(ctx context.Context) error {
		// A concurrent buyer may have taken the seat since the check.
		if err := s.tickets.Create(ctx, ticket); errors.Is(err, repository.ErrConflict) {
			return model.ErrSeatTaken
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := purchasedEvent(ticket, sess)
	if err := s.publisher.PublishTicketPurchased(ctx, ev); err != nil {
		s.log.Warn("publish ticket purchased failed", zap.String("ticket_id", ev.TicketID), zap.Error(err))
	}
	return ticket, nil
}

func purchasedEvent(t *model.Ticket, sess *model.Session) queue.TicketPurchasedEvent {
	ev := queue.TicketPurchasedEvent{
		TicketID:    t.ID.String(),
		UserID:      t.UserID.String(),
		SessionID:   sess.ID.String(),
		SeatNumber:  t.SeatNumber,
		HalfPrice:   t.HalfPrice,
		StartsAt:    sess.StartsAt.UTC().Format(time.RFC3339),
		PurchasedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if sess.Movie != nil {
		ev.MovieTitle = sess.Movie.Title
	}
	if sess.Room != nil {
		ev.RoomNumber = sess.Room.Number
	}
	return ev
}

// ListMine returns the current user's tickets, newest first.
func (s *TicketService) ListMine(ctx context.Context) ([]*model.Ticket, error) {
	out, err := s.tickets.ListByUser(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.internal("ticket list", err)
	}
	return out, nil
}

// GetMine returns one of the current user's tickets.
func (s *TicketService) GetMine(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("ticket get", err)
	}
	if t.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return t, nil
}

// QRCode renders the encrypted ticket QR code as PNG bytes.
func (s *TicketService) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	t, err := s.GetMine(ctx, id)
	if err != nil {
		return nil, err
	}
	p := utils.TicketPayload{
		TicketID:   t.ID.String(),
		SessionID:  t.SessionID.String(),
		UserID:     t.UserID.String(),
		SeatNumber: t.SeatNumber,
		HalfPrice:  t.HalfPrice,
	}
	if t.Session != nil {
		p.StartsAt = t.Session.StartsAt.UTC().Format(time.RFC3339)
	}
	png, err := s.qr.PNG(p)
	if err != nil {
		return nil, s.internal("ticket qr", err)
	}
	return png, nil
}
