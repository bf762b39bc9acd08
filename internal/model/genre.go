package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Genre is a classification tag attached to movies.  Genres belong to
// the company user that registered them.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – company user that owns the genre.
//	Description – genre name, unique per owner (case-insensitive).
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID          uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID      uuid.UUID `bun:"user_id,notnull,type:varchar(36)" json:"user_id"`
	Description string    `bun:"description,notnull" json:"description" validate:"required,min=2,max=100"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// NewGenre builds a genre with a fresh identifier.
func NewGenre(description string) *Genre {
	return &Genre{ID: uuid.New(), Description: description}
}

// Update copies the editable fields of edited into g.
func (g *Genre) Update(edited *Genre) {
	g.Description = edited.Description
}
