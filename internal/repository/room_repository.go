package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// RoomRepo manages persistence for rooms.
type RoomRepo struct {
	db *bun.DB
}

func NewRoomRepo(db *bun.DB) *RoomRepo { return &RoomRepo{db: db} }

func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	room.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(room).Exec(ctx)
	return err
}

func (r *RoomRepo) CreateMany(ctx context.Context, rooms []*model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, room := range rooms {
		if room.ID == uuid.Nil {
			room.ID = uuid.New()
		}
		room.CreatedAt = now
	}
	_, err := executor(ctx, r.db).NewInsert().Model(&rooms).Exec(ctx)
	return err
}

func (r *RoomRepo) Update(ctx context.Context, id uuid.UUID, edited *model.Room) (bool, error) {
	room, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	room.Update(edited)
	room.UpdatedAt = time.Now().UTC()
	_, err = executor(ctx, r.db).NewUpdate().
		Model(room).
		Column("number", "capacity", "updated_at").
		WherePK().
		Exec(ctx)
	return err == nil, err
}

func (r *RoomRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := executor(ctx, r.db).NewDelete().
		Model((*model.Room)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

func (r *RoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room := new(model.Room)
	err := executor(ctx, r.db).NewSelect().Model(room).Where("r.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (r *RoomRepo) List(ctx context.Context) ([]*model.Room, error) {
	var out []*model.Room
	err := executor(ctx, r.db).NewSelect().Model(&out).Order("r.number ASC").Scan(ctx)
	return out, err
}

func (r *RoomRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Room, error) {
	var out []*model.Room
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Where("r.user_id = ?", userID).
		Order("r.number ASC").
		Scan(ctx)
	return out, err
}

// NumberTaken reports whether userID already owns another room with the
// given number.
func (r *RoomRepo) NumberTaken(ctx context.Context, userID uuid.UUID, number int, exclude uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Room)(nil)).
		Where("r.user_id = ?", userID).
		Where("r.number = ?", number).
		Where("r.id <> ?", exclude).
		Exists(ctx)
}

// InUse reports whether any session is scheduled in the room.
func (r *RoomRepo) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Session)(nil)).
		Where("s.room_id = ?", id).
		Exists(ctx)
}
