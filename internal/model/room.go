package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Room is a physical screening room with a fixed seating capacity.
// The room number is unique per owner.
type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:r"`

	ID        uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:varchar(36)" json:"user_id"`
	Number    int       `bun:"number,notnull" json:"number" validate:"gt=0"`
	Capacity  int       `bun:"capacity,notnull" json:"capacity" validate:"gt=0"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// NewRoom builds a room with a fresh identifier.
func NewRoom(number, capacity int) *Room {
	return &Room{ID: uuid.New(), Number: number, Capacity: capacity}
}

// Update copies the editable fields of edited into r.
func (r *Room) Update(edited *Room) {
	r.Number = edited.Number
	r.Capacity = edited.Capacity
}
