package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// MovieRepo manages persistence for movies.  Reads load the genre.
type MovieRepo struct {
	db *bun.DB
}

func NewMovieRepo(db *bun.DB) *MovieRepo { return &MovieRepo{db: db} }

func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(m).Exec(ctx)
	return err
}

func (r *MovieRepo) CreateMany(ctx context.Context, movies []*model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, m := range movies {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt = now
	}
	_, err := executor(ctx, r.db).NewInsert().Model(&movies).Exec(ctx)
	return err
}

// Update returns false when no movie has the given id.
func (r *MovieRepo) Update(ctx context.Context, id uuid.UUID, edited *model.Movie) (bool, error) {
	m, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	m.Update(edited)
	m.UpdatedAt = time.Now().UTC()
	_, err = executor(ctx, r.db).NewUpdate().
		Model(m).
		Column("title", "duration_minutes", "release", "genre_id", "updated_at").
		WherePK().
		Exec(ctx)
	return err == nil, err
}

func (r *MovieRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := executor(ctx, r.db).NewDelete().
		Model((*model.Movie)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

func (r *MovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	m := new(model.Movie)
	err := executor(ctx, r.db).NewSelect().
		Model(m).
		Relation("Genre").
		Where("m.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (r *MovieRepo) List(ctx context.Context) ([]*model.Movie, error) {
	var out []*model.Movie
	err := executor(ctx, r.db).NewSelect().Model(&out).Relation("Genre").Order("m.title ASC").Scan(ctx)
	return out, err
}

func (r *MovieRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Movie, error) {
	var out []*model.Movie
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Relation("Genre").
		Where("m.user_id = ?", userID).
		Order("m.title ASC").
		Scan(ctx)
	return out, err
}

// TitleTaken reports whether userID already owns a movie with the same
// title, ignoring case and skipping exclude.
func (r *MovieRepo) TitleTaken(ctx context.Context, userID uuid.UUID, title string, exclude uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Movie)(nil)).
		Where("m.user_id = ?", userID).
		Where("LOWER(m.title) = LOWER(?)", title).
		Where("m.id <> ?", exclude).
		Exists(ctx)
}

// InUse reports whether any session screens the movie.
func (r *MovieRepo) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Session)(nil)).
		Where("s.movie_id = ?", id).
		Exists(ctx)
}
