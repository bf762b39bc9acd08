package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-control/internal/model"
)

// The repository interfaces below are satisfied by the bun repositories in
// package repository.  Lookups by id return repository.ErrNotFound when no
// row matches.

type GenreRepository interface {
	Create(ctx context.Context, g *model.Genre) error
	Update(ctx context.Context, id uuid.UUID, edited *model.Genre) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Genre, error)
	DescriptionTaken(ctx context.Context, userID uuid.UUID, description string, exclude uuid.UUID) (bool, error)
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}

type MovieRepository interface {
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, id uuid.UUID, edited *model.Movie) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Movie, error)
	TitleTaken(ctx context.Context, userID uuid.UUID, title string, exclude uuid.UUID) (bool, error)
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *model.Room) error
	Update(ctx context.Context, id uuid.UUID, edited *model.Room) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Room, error)
	NumberTaken(ctx context.Context, userID uuid.UUID, number int, exclude uuid.UUID) (bool, error)
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, id uuid.UUID, edited *model.Session) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Session, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.Session, error)
	ListOpen(ctx context.Context, title string) ([]*model.Session, error)
	Close(ctx context.Context, id uuid.UUID) (bool, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Ticket, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	SaveLoginState(ctx context.Context, u *model.User) error
}

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
}

type TokenRepository interface {
	StoreRefresh(ctx context.Context, userID uuid.UUID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeByHash(ctx context.Context, tokenHash string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}
