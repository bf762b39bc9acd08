package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
)

// MovieSessions is one entry of the customer catalog: a movie with its
// open sessions in start order.
type MovieSessions struct {
	Movie    *model.Movie
	Sessions []*model.Session
}

// SessionService schedules the tenant's sessions and serves the customer
// catalog.
//
// A session may not sell more tickets than its room seats, and two
// sessions in the same room may not overlap in time.  Closed sessions
// still occupy their room.
type SessionService struct {
	base
	sessions SessionRepository
	movies   MovieRepository
	rooms    RoomRepository
}

func NewSessionService(sessions SessionRepository, movies MovieRepository, rooms RoomRepository, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *SessionService {
	return &SessionService{base: newBase(uow, tenant, log), sessions: sessions, movies: movies, rooms: rooms}
}

func (s *SessionService) Create(ctx context.Context, in *model.Session) (*model.Session, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	in.ID = uuid.New()
	if err := s.checkSchedule(ctx, in); err != nil {
		return nil, err
	}
	in.UserID = s.tenant.UserID(ctx)
	in.Closed = false
	in.Tickets = nil
	err := s.write(ctx, "session create", func(ctx context.Context) error {
		return s.sessions.Create(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (s *SessionService) Update(ctx context.Context, id uuid.UUID, edited *model.Session) (*model.Session, error) {
	if err := validateStruct(edited); err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Sold tickets keep their seats, so the limit cannot drop below the
	// highest one.
	if sold := current.SoldSeats(); len(sold) > 0 && edited.MaxTickets < sold[len(sold)-1] {
		return nil, invalidRequest(fmt.Sprintf("max tickets cannot be lower than sold seat %d", sold[len(sold)-1]))
	}
	edited.ID = id
	if err := s.checkSchedule(ctx, edited); err != nil {
		return nil, err
	}
	err = s.write(ctx, "session update", func(ctx context.Context) error {
		return found(s.sessions.Update(ctx, id, edited))
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// checkSchedule resolves the session's movie and room and rejects a ticket
// limit above the room capacity or a time slot that overlaps another
// session in the room.
func (s *SessionService) checkSchedule(ctx context.Context, in *model.Session) error {
	owner := s.tenant.UserID(ctx)
	movie, err := s.movies.GetByID(ctx, in.MovieID)
	if err != nil {
		return s.lookup("session movie", err)
	}
	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return s.lookup("session room", err)
	}
	if movie.UserID != owner || room.UserID != owner {
		return ErrNotFound
	}
	in.Movie, in.Room = movie, room
	in.StartsAt = in.StartsAt.UTC()

	if in.MaxTickets > room.Capacity {
		return ErrCapacityExceeded
	}
	scheduled, err := s.sessions.ListByRoom(ctx, room.ID)
	if err != nil {
		return s.internal("session schedule", err)
	}
	for _, other := range scheduled {
		if other.ID == in.ID {
			continue
		}
		if in.Overlaps(other) {
			s.log.Debug("session overlaps",
				zap.Stringer("room_id", room.ID),
				zap.Stringer("conflicting_id", other.ID),
				zap.Time("starts_at", in.StartsAt))
			return ErrDuplicate
		}
	}
	return nil
}

// Delete removes the session and every ticket sold for it.
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.write(ctx, "session delete", func(ctx context.Context) error {
		return found(s.sessions.Delete(ctx, id))
	})
}

// GetByID returns one of the tenant's sessions with its sold tickets.
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("session get", err)
	}
	if sess.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	out, err := s.sessions.ListByUser(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.internal("session list", err)
	}
	return out, nil
}

// Close stops ticket sales for the session.  Closing a closed session is
// a no-op.
func (s *SessionService) Close(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Closed {
		return sess, nil
	}
	err = s.write(ctx, "session close", func(ctx context.Context) error {
		return found(s.sessions.Close(ctx, id))
	})
	if err != nil {
		return nil, err
	}
	sess.Close()
	return sess, nil
}

// GetOpen returns any company's session for the customer catalog.
func (s *SessionService) GetOpen(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("catalog get", err)
	}
	return sess, nil
}

// ListOpenGroupedByMovie returns the open sessions grouped by movie,
// optionally narrowed to titles containing title.  Movies are ordered by
// their earliest session.
func (s *SessionService) ListOpenGroupedByMovie(ctx context.Context, title string) ([]MovieSessions, error) {
	open, err := s.sessions.ListOpen(ctx, title)
	if err != nil {
		return nil, s.internal("catalog list", err)
	}
	index := make(map[uuid.UUID]int)
	out := make([]MovieSessions, 0)
	for _, sess := range open {
		i, ok := index[sess.MovieID]
		if !ok {
			i = len(out)
			index[sess.MovieID] = i
			out = append(out, MovieSessions{Movie: sess.Movie})
		}
		out[i].Sessions = append(out[i].Sessions, sess)
	}
	return out, nil
}
