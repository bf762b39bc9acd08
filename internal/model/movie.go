package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Movie is a film that can be scheduled in sessions.
//
// Fields:
//
//	ID              – primary key identifier.
//	UserID          – company user that owns the movie.
//	Title           – movie title, unique per owner (case-insensitive).
//	DurationMinutes – running time; used to compute when a session ends.
//	Release         – whether the movie is a new release.
//	GenreID         – genre of the movie.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:m"`

	ID              uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	UserID          uuid.UUID `bun:"user_id,notnull,type:varchar(36)" json:"user_id"`
	Title           string    `bun:"title,notnull" json:"title" validate:"required,min=2,max=100"`
	DurationMinutes int       `bun:"duration_minutes,notnull" json:"duration_minutes" validate:"gt=0"`
	Release         bool      `bun:"release,notnull,default:false" json:"release"`
	GenreID         uuid.UUID `bun:"genre_id,notnull,type:varchar(36)" json:"genre_id" validate:"required"`
	Genre           *Genre    `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero" json:"updated_at"`
}

// NewMovie builds a movie with a fresh identifier.  A nil genre leaves
// GenreID unset so validation can reject it.
func NewMovie(title string, durationMinutes int, release bool, genre *Genre) *Movie {
	m := &Movie{
		ID:              uuid.New(),
		Title:           title,
		DurationMinutes: durationMinutes,
		Release:         release,
		Genre:           genre,
	}
	if genre != nil {
		m.GenreID = genre.ID
	}
	return m
}

// Duration returns the running time as a time.Duration.
func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

// Update copies the editable fields of edited into m.
func (m *Movie) Update(edited *Movie) {
	m.Title = edited.Title
	m.DurationMinutes = edited.DurationMinutes
	m.Release = edited.Release
	m.GenreID = edited.GenreID
	m.Genre = edited.Genre
}
