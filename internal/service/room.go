package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
)

// RoomService manages the tenant's rooms.
type RoomService struct {
	base
	rooms RoomRepository
}

func NewRoomService(rooms RoomRepository, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *RoomService {
	return &RoomService{base: newBase(uow, tenant, log), rooms: rooms}
}

func (s *RoomService) Create(ctx context.Context, r *model.Room) (*model.Room, error) {
	if err := validateStruct(r); err != nil {
		return nil, err
	}
	owner := s.tenant.UserID(ctx)
	taken, err := s.rooms.NumberTaken(ctx, owner, r.Number, uuid.Nil)
	if err != nil {
		return nil, s.internal("room create", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	r.ID = uuid.New()
	r.UserID = owner
	err = s.write(ctx, "room create", func(ctx context.Context) error {
		return s.rooms.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, edited *model.Room) (*model.Room, error) {
	if err := validateStruct(edited); err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.rooms.NumberTaken(ctx, current.UserID, edited.Number, id)
	if err != nil {
		return nil, s.internal("room update", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	err = s.write(ctx, "room update", func(ctx context.Context) error {
		return found(s.rooms.Update(ctx, id, edited))
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses rooms that have sessions.
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.rooms.InUse(ctx, id)
	if err != nil {
		return s.internal("room delete", err)
	}
	if inUse {
		return ErrInUse
	}
	return s.write(ctx, "room delete", func(ctx context.Context) error {
		return found(s.rooms.Delete(ctx, id))
	})
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("room get", err)
	}
	if r.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *RoomService) List(ctx context.Context) ([]*model.Room, error) {
	out, err := s.rooms.ListByUser(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.internal("room list", err)
	}
	return out, nil
}
